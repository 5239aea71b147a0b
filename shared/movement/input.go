package movement

import "github.com/automoto/jumpsync/shared/gamemath"

// InputSample is one tick of avatar input. Local avatars sample it from a
// device; remote avatars rebuild it from a network delta.
type InputSample struct {
	Joystick    gamemath.Vector // Each axis in -1..1
	Jump        bool
	Run         bool
	PowerAction bool
	Crouch      bool
}

const stickDeadzone = 0.35

// Horizontal returns the digital horizontal direction: -1, 0 or 1.
func (in InputSample) Horizontal() float64 {
	switch {
	case in.Joystick.X > stickDeadzone:
		return 1
	case in.Joystick.X < -stickDeadzone:
		return -1
	}
	return 0
}

// Down reports whether the avatar is asked to crouch.
func (in InputSample) Down() bool {
	return in.Crouch || in.Joystick.Y < -0.5
}

// Up reports whether the stick is held up.
func (in InputSample) Up() bool {
	return in.Joystick.Y > 0.5
}
