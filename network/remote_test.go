package network

import (
	"testing"
	"time"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
	"github.com/automoto/jumpsync/shared/tiles"
)

func flatContext(w, h int) *movement.SimulationContext {
	l := level.New("flat", w, h)
	for x := 0; x < w; x++ {
		l.SetTile(tiles.Coord{X: x, Y: 0}, tiles.Tile{Behavior: tiles.Solid})
	}
	return movement.NewContext(l, tiles.NewResolver(l), l.Bounds())
}

func remoteDelta(t *testing.T, id uint, pos, vel gamemath.Vector, in movement.InputSample, sentAt time.Duration) messages.RemoteDelta {
	t.Helper()
	s := movement.NewState(pos, netconfig.Small)
	d, err := netsync.FromState(&s, in)
	if err != nil {
		t.Fatal(err)
	}
	payload, err := d.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return messages.RemoteDelta{
		NetworkID: id,
		Delta:     payload,
		X:         pos.X,
		Y:         pos.Y,
		VX:        vel.X,
		VY:        vel.Y,
		Powerup:   uint8(netconfig.Small),
		SentAt:    int64(sentAt),
	}
}

func TestRemotesApply(t *testing.T) {
	r := NewRemotes(flatContext(40, 10))
	if !r.ctx.Tiles.IsDryRun() {
		t.Fatal("remote avatars must not write the tile grid")
	}

	now := 10 * time.Second
	in := movement.InputSample{Joystick: gamemath.Vector{X: 1}, Run: true}
	msg := remoteDelta(t, 4, gamemath.Vector{X: 8, Y: 1}, gamemath.Vector{X: 4}, in, now-50*time.Millisecond)

	rep, err := r.Apply(msg, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rep.FullTicks != 3 {
		t.Errorf("full ticks = %d, want 3", rep.FullTicks)
	}
	a, ok := r.Get(4)
	if !ok {
		t.Fatal("unknown remote was not spawned")
	}
	if a.State.Position.X <= 8 {
		t.Errorf("x = %v, resimulation did not move forward", a.State.Position.X)
	}
	if a.Input.Joystick.X != 1 || !a.Input.Run {
		t.Errorf("input = %+v", a.Input)
	}

	x := a.State.Position.X
	r.Step(1.0 / 60.0)
	if a.State.Position.X <= x {
		t.Error("Step did not keep the remote moving with its last input")
	}
}

func TestRemotesApplyRejects(t *testing.T) {
	r := NewRemotes(flatContext(20, 10))

	bad := messages.RemoteDelta{NetworkID: 1, Delta: []byte{1}}
	if _, err := r.Apply(bad, 0); err == nil {
		t.Error("truncated delta accepted")
	}

	msg := remoteDelta(t, 2, gamemath.Vector{X: 2, Y: 1}, gamemath.Vector{}, movement.InputSample{}, 0)
	msg.Powerup = 200
	if _, err := r.Apply(msg, 0); err == nil {
		t.Error("invalid powerup accepted")
	}
	if r.Len() != 0 {
		t.Errorf("rejected deltas spawned %d remotes", r.Len())
	}
}

func TestRemotesLifecycle(t *testing.T) {
	r := NewRemotes(flatContext(20, 10))
	r.Spawn(9, gamemath.Vector{X: 2, Y: 1}, netconfig.Small)
	r.Spawn(3, gamemath.Vector{X: 5, Y: 1}, netconfig.Mushroom)

	all := r.All()
	if len(all) != 2 || all[0].ID != 3 || all[1].ID != 9 {
		t.Fatalf("All = %+v, want ids 3 and 9", all)
	}

	r.ApplyEvent(messages.MovementEvent{NetworkID: 3, Kind: uint8(movement.EventDeath)})
	if a, _ := r.Get(3); !a.State.Dead {
		t.Error("death event not mirrored")
	}

	again := r.Spawn(3, gamemath.Vector{X: 7, Y: 1}, netconfig.Small)
	if again.State.Dead || again.State.Position.X != 7 {
		t.Errorf("respawn = %+v", again.State)
	}

	r.Remove(9)
	if _, ok := r.Get(9); ok || r.Len() != 1 {
		t.Error("Remove left the avatar behind")
	}
}
