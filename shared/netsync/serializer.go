package netsync

import (
	"time"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
)

// Serializer decides when the local avatar's delta is worth sending.
type Serializer struct {
	Epsilon float64
	Resend  time.Duration

	last     NetworkDelta
	lastSent time.Duration
	sent     bool
}

// NewSerializer creates a serializer with the configured thresholds.
func NewSerializer() *Serializer {
	return &Serializer{
		Epsilon: config.Net.JoystickEpsilon,
		Resend:  time.Duration(config.Net.ResendInterval * float64(time.Second)),
	}
}

// Serialize packs s and returns the delta when it should be sent: the
// joystick moved more than Epsilon, any flag changed, or Resend elapsed
// since the last send. Local input is clamped into range first.
func (z *Serializer) Serialize(s *movement.State, in movement.InputSample, now time.Duration) (NetworkDelta, bool) {
	in.Joystick = gamemath.Vector{
		X: gamemath.Clamp(in.Joystick.X, -1, 1),
		Y: gamemath.Clamp(in.Joystick.Y, -1, 1),
	}
	d, err := FromState(s, in)
	if err != nil {
		// Only NaN axes get here.
		in.Joystick = gamemath.Vector{}
		d, _ = FromState(s, in)
	}

	if z.sent && !z.changed(d) && now-z.lastSent < z.Resend {
		return d, false
	}
	z.last = d
	z.lastSent = now
	z.sent = true
	return d, true
}

// Reset forces the next Serialize to send.
func (z *Serializer) Reset() {
	z.sent = false
}

func (z *Serializer) changed(d NetworkDelta) bool {
	if d.Flags != z.last.Flags || d.Flags2 != z.last.Flags2 {
		return true
	}
	return d.Joystick().Sub(z.last.Joystick()).Len() > z.Epsilon
}
