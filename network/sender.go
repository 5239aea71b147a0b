package network

import (
	"fmt"
	"time"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netsync"
)

// Sender turns the local avatar's state into PlayerDelta messages, sending
// only when the serializer says something changed.
type Sender struct {
	serializer *netsync.Serializer
	buffer     PredictionBuffer
	seq        uint32
}

func NewSender() *Sender {
	return &Sender{serializer: netsync.NewSerializer()}
}

// Next returns the message to send for this tick, if any. serverNow is the
// client's estimate of the server clock.
func (s *Sender) Next(state *movement.State, in movement.InputSample, serverNow time.Duration) (messages.PlayerDelta, bool, error) {
	d, send := s.serializer.Serialize(state, in, serverNow)
	if !send {
		return messages.PlayerDelta{}, false, nil
	}
	payload, err := d.MarshalBinary()
	if err != nil {
		return messages.PlayerDelta{}, false, fmt.Errorf("marshal delta: %w", err)
	}

	s.seq++
	s.buffer.Store(s.seq, d, state.Position)
	return messages.PlayerDelta{
		Sequence: s.seq,
		Delta:    payload,
		X:        state.Position.X,
		Y:        state.Position.Y,
		VX:       state.Velocity.X,
		VY:       state.Velocity.Y,
		Powerup:  uint8(state.Powerup),
		SentAt:   int64(serverNow),
	}, true, nil
}

// Drift returns how far the server's replay of seq landed from where the
// client predicted.
func (s *Sender) Drift(seq uint32, server gamemath.Vector) float64 {
	return s.buffer.PredictionError(seq, server)
}

// Unacknowledged returns the deltas the server has not confirmed yet.
func (s *Sender) Unacknowledged(lastAcked uint32) []DeltaRecord {
	return s.buffer.GetUnacknowledged(lastAcked)
}

// Reset forces the next tick to send, e.g. after a respawn.
func (s *Sender) Reset() {
	s.serializer.Reset()
}
