// Package input turns device state into movement input samples. Providers
// are polled once per simulation tick.
package input

import (
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
)

// Provider yields one input sample per tick.
type Provider interface {
	Sample() movement.InputSample
}

// Actions is the pressed state of every action for one tick.
type Actions [netconfig.ActionCount]bool

// Combine builds an input sample from digital actions and an analog stick.
// The stick is in screen orientation (+Y down) as devices report it and is
// ignored inside deadzone; outside it, it overrides the digital directions.
func Combine(actions Actions, stick gamemath.Vector, deadzone float64) movement.InputSample {
	in := movement.InputSample{
		Jump:        actions[netconfig.ActionJump],
		Run:         actions[netconfig.ActionRun],
		PowerAction: actions[netconfig.ActionPower],
		Crouch:      actions[netconfig.ActionCrouch],
	}

	switch {
	case actions[netconfig.ActionMoveLeft] && !actions[netconfig.ActionMoveRight]:
		in.Joystick.X = -1
	case actions[netconfig.ActionMoveRight] && !actions[netconfig.ActionMoveLeft]:
		in.Joystick.X = 1
	}
	switch {
	case actions[netconfig.ActionMoveUp]:
		in.Joystick.Y = 1
	case actions[netconfig.ActionCrouch]:
		in.Joystick.Y = -1
	}

	if stick.Len() > deadzone {
		in.Joystick = gamemath.Vector{
			X: gamemath.Clamp(stick.X, -1, 1),
			Y: gamemath.Clamp(-stick.Y, -1, 1),
		}
	}
	return in
}

// Static always returns the same sample.
type Static movement.InputSample

func (s Static) Sample() movement.InputSample {
	return movement.InputSample(s)
}

// Script plays back a fixed list of samples, then repeats the last one.
type Script struct {
	Samples []movement.InputSample
	next    int
}

func (s *Script) Sample() movement.InputSample {
	if len(s.Samples) == 0 {
		return movement.InputSample{}
	}
	in := s.Samples[min(s.next, len(s.Samples)-1)]
	s.next++
	return in
}

// Done reports whether every scripted sample has been returned.
func (s *Script) Done() bool {
	return s.next >= len(s.Samples)
}
