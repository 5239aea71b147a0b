// Package netsync packs avatar state into compact network deltas and
// replays remote avatars forward to the local server time.
package netsync

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
)

var (
	// ErrMalformedDelta is returned for payloads that do not decode to a
	// consistent delta.
	ErrMalformedDelta = errors.New("netsync: malformed delta")
	// ErrJoystickRange is returned when a joystick axis is outside -1..1.
	ErrJoystickRange = errors.New("netsync: joystick out of range")
)

// DeltaSize is the encoded length of a NetworkDelta in bytes.
const DeltaSize = 7

// Flag is a bit position in NetworkDelta.Flags. The order is the wire
// format; append only.
type Flag uint8

const (
	FlagFacingRight Flag = iota
	FlagOnGround
	FlagCrouching
	FlagSliding
	FlagGroundpound
	FlagSkidding
	FlagTurnaround
	FlagKnockback
	FlagInShell
	FlagFlying
	FlagPropeller
	FlagDrill
	FlagWallSlideLeft
	FlagWallSlideRight
	FlagFrozen
	FlagStuckInBlock
	flagCount
)

// Flag2 is a bit position in NetworkDelta.Flags2.
type Flag2 uint8

const (
	Flag2JumpHeld Flag2 = iota
	Flag2RunHeld
	Flag2PowerHeld
	Flag2CrouchHeld
	Flag2HitLeft
	Flag2HitRight
	Flag2HitRoof
	Flag2Transit
	flag2Count
)

// NetworkDelta is the per-tick wire form of an avatar: the joystick in
// fixed point plus two flag words.
type NetworkDelta struct {
	JoyX   int16
	JoyY   int16
	Flags  uint16
	Flags2 uint8
}

// Has reports whether flag f is set.
func (d NetworkDelta) Has(f Flag) bool {
	return d.Flags&(1<<f) != 0
}

// Set sets or clears flag f.
func (d *NetworkDelta) Set(f Flag, v bool) {
	if v {
		d.Flags |= 1 << f
	} else {
		d.Flags &^= 1 << f
	}
}

// Has2 reports whether flag f is set in Flags2.
func (d NetworkDelta) Has2(f Flag2) bool {
	return d.Flags2&(1<<f) != 0
}

// Set2 sets or clears flag f in Flags2.
func (d *NetworkDelta) Set2(f Flag2, v bool) {
	if v {
		d.Flags2 |= 1 << f
	} else {
		d.Flags2 &^= 1 << f
	}
}

// EncodeAxis converts a joystick axis to fixed point.
func EncodeAxis(v float64) (int16, error) {
	if math.IsNaN(v) || v < -1 || v > 1 {
		return 0, fmt.Errorf("%w: %v", ErrJoystickRange, v)
	}
	return int16(math.Round(v * config.Net.JoystickScale)), nil
}

// DecodeAxis converts a fixed-point axis back to -1..1.
func DecodeAxis(v int16) float64 {
	return float64(v) / config.Net.JoystickScale
}

func axisValid(v int16) bool {
	return v >= -int16(config.Net.JoystickScale) && v <= int16(config.Net.JoystickScale)
}

// Joystick returns the decoded joystick vector.
func (d NetworkDelta) Joystick() gamemath.Vector {
	return gamemath.Vector{X: DecodeAxis(d.JoyX), Y: DecodeAxis(d.JoyY)}
}

// Validate rejects deltas no sender could have produced.
func (d NetworkDelta) Validate() error {
	if !axisValid(d.JoyX) || !axisValid(d.JoyY) {
		return fmt.Errorf("%w: joystick (%d, %d)", ErrJoystickRange, d.JoyX, d.JoyY)
	}
	owning := 0
	for _, f := range []Flag{FlagFrozen, FlagKnockback, FlagGroundpound, FlagFlying, FlagPropeller, FlagDrill} {
		if d.Has(f) {
			owning++
		}
	}
	if d.Has2(Flag2Transit) {
		owning++
	}
	if owning > 1 {
		return fmt.Errorf("%w: %d owning modes set", ErrMalformedDelta, owning)
	}
	if d.Has(FlagWallSlideLeft) && d.Has(FlagWallSlideRight) {
		return fmt.Errorf("%w: wall slide on both sides", ErrMalformedDelta)
	}
	return nil
}

// MarshalBinary encodes the delta as 7 big-endian bytes: JoyX, JoyY, Flags,
// Flags2.
func (d NetworkDelta) MarshalBinary() ([]byte, error) {
	b := make([]byte, DeltaSize)
	binary.BigEndian.PutUint16(b[0:], uint16(d.JoyX))
	binary.BigEndian.PutUint16(b[2:], uint16(d.JoyY))
	binary.BigEndian.PutUint16(b[4:], d.Flags)
	b[6] = d.Flags2
	return b, nil
}

// UnmarshalBinary decodes b into d. On error d is left untouched.
func (d *NetworkDelta) UnmarshalBinary(b []byte) error {
	if len(b) != DeltaSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrMalformedDelta, len(b), DeltaSize)
	}
	next := NetworkDelta{
		JoyX:   int16(binary.BigEndian.Uint16(b[0:])),
		JoyY:   int16(binary.BigEndian.Uint16(b[2:])),
		Flags:  binary.BigEndian.Uint16(b[4:]),
		Flags2: b[6],
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*d = next
	return nil
}

// FromState packs an avatar and the input it ran with this tick.
func FromState(s *movement.State, in movement.InputSample) (NetworkDelta, error) {
	var d NetworkDelta
	var err error
	if d.JoyX, err = EncodeAxis(in.Joystick.X); err != nil {
		return NetworkDelta{}, err
	}
	if d.JoyY, err = EncodeAxis(in.Joystick.Y); err != nil {
		return NetworkDelta{}, err
	}

	d.Set(FlagFacingRight, s.FacingRight)
	d.Set(FlagOnGround, s.OnGround)
	d.Set(FlagCrouching, s.Crouching)
	d.Set(FlagSliding, s.Sliding)
	d.Set(FlagGroundpound, s.Groundpound)
	d.Set(FlagSkidding, s.Skidding)
	d.Set(FlagTurnaround, s.Turnaround)
	d.Set(FlagKnockback, s.Knockback)
	d.Set(FlagInShell, s.InShell)
	d.Set(FlagFlying, s.Flying)
	d.Set(FlagPropeller, s.Propeller)
	d.Set(FlagDrill, s.Drill)
	d.Set(FlagWallSlideLeft, s.WallSlideLeft)
	d.Set(FlagWallSlideRight, s.WallSlideRight)
	d.Set(FlagFrozen, s.Frozen)
	d.Set(FlagStuckInBlock, s.StuckInBlock)

	d.Set2(Flag2JumpHeld, in.Jump)
	d.Set2(Flag2RunHeld, in.Run)
	d.Set2(Flag2PowerHeld, in.PowerAction)
	d.Set2(Flag2CrouchHeld, in.Crouch)
	d.Set2(Flag2HitLeft, s.HitLeft)
	d.Set2(Flag2HitRight, s.HitRight)
	d.Set2(Flag2HitRoof, s.HitRoof)
	d.Set2(Flag2Transit, s.Transit.Active)
	return d, nil
}

// Input rebuilds the input sample the sender ran with.
func (d NetworkDelta) Input() movement.InputSample {
	return movement.InputSample{
		Joystick:    d.Joystick(),
		Jump:        d.Has2(Flag2JumpHeld),
		Run:         d.Has2(Flag2RunHeld),
		PowerAction: d.Has2(Flag2PowerHeld),
		Crouch:      d.Has2(Flag2CrouchHeld),
	}
}

// ApplyTo copies the packed mode and contact flags onto s. Held buttons
// are not copied; they arrive through Input so edges replay correctly.
// Timed modes the replica was not already in start with full timers.
// Transit is sender-driven and only ever cleared here.
func (d NetworkDelta) ApplyTo(s *movement.State) {
	if d.Has(FlagKnockback) && !s.Knockback {
		dir := config.DirectionRight
		if d.Has(FlagFacingRight) {
			dir = config.DirectionLeft
		}
		s.KnockbackVX = dir * config.Movement.KnockbackSpeed
		s.KnockbackDur = config.Timers.Knockback
		s.Timers.Set(movement.TimerKnockback, config.Timers.Knockback)
	}
	if d.Has(FlagFrozen) && !s.Frozen {
		s.Timers.Set(movement.TimerFreeze, config.Timers.Freeze)
		s.Timers.Set(movement.TimerFreezeBreak, config.Timers.Freeze+config.Timers.FreezeBreak)
	}
	if d.Has(FlagPropeller) && !s.Propeller {
		s.PropellerUsed = true
		s.Timers.Set(movement.TimerPropeller, config.Timers.Propeller)
	}

	s.FacingRight = d.Has(FlagFacingRight)
	s.OnGround = d.Has(FlagOnGround)
	s.Crouching = d.Has(FlagCrouching)
	s.Sliding = d.Has(FlagSliding)
	s.Groundpound = d.Has(FlagGroundpound)
	s.Skidding = d.Has(FlagSkidding)
	s.Turnaround = d.Has(FlagTurnaround)
	s.Knockback = d.Has(FlagKnockback)
	s.InShell = d.Has(FlagInShell)
	s.Flying = d.Has(FlagFlying)
	s.Propeller = d.Has(FlagPropeller)
	s.Drill = d.Has(FlagDrill)
	s.WallSlideLeft = d.Has(FlagWallSlideLeft)
	s.WallSlideRight = d.Has(FlagWallSlideRight)
	s.Frozen = d.Has(FlagFrozen)
	s.StuckInBlock = d.Has(FlagStuckInBlock)

	s.HitLeft = d.Has2(Flag2HitLeft)
	s.HitRight = d.Has2(Flag2HitRight)
	s.HitRoof = d.Has2(Flag2HitRoof)
	if !d.Has2(Flag2Transit) {
		s.Transit = movement.Transit{}
	}
}
