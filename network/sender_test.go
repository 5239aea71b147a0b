package network

import (
	"testing"
	"time"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
)

func TestSenderSendsOnChange(t *testing.T) {
	s := NewSender()
	state := movement.NewState(gamemath.Vector{X: 3, Y: 1}, netconfig.Mushroom)
	state.Velocity = gamemath.Vector{X: 2}
	idle := movement.InputSample{}

	msg, ok, err := s.Next(&state, idle, time.Second)
	if err != nil || !ok {
		t.Fatalf("first Next = %v, %v; want a message", ok, err)
	}
	if msg.Sequence != 1 || msg.SentAt != int64(time.Second) {
		t.Errorf("msg = %+v", msg)
	}
	if msg.X != 3 || msg.VX != 2 || msg.Powerup != uint8(netconfig.Mushroom) {
		t.Errorf("snapshot fields = %+v", msg)
	}
	var d netsync.NetworkDelta
	if err := d.UnmarshalBinary(msg.Delta); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}

	if _, ok, _ := s.Next(&state, idle, time.Second+10*time.Millisecond); ok {
		t.Error("unchanged input was sent again")
	}

	msg, ok, _ = s.Next(&state, movement.InputSample{Jump: true}, time.Second+20*time.Millisecond)
	if !ok || msg.Sequence != 2 {
		t.Errorf("jump press: ok=%v seq=%d, want a second message", ok, msg.Sequence)
	}

	if got := s.Unacknowledged(1); len(got) != 1 || got[0].Sequence != 2 {
		t.Errorf("unacknowledged = %+v", got)
	}
	if got := s.Drift(2, gamemath.Vector{X: 3, Y: 2}); got != 1 {
		t.Errorf("drift = %v, want 1", got)
	}
}

func TestSenderReset(t *testing.T) {
	s := NewSender()
	state := movement.NewState(gamemath.Vector{}, netconfig.Small)
	s.Next(&state, movement.InputSample{}, 0)
	s.Reset()
	if _, ok, _ := s.Next(&state, movement.InputSample{}, time.Millisecond); !ok {
		t.Error("Reset did not force a send")
	}
}
