// Package movement is the deterministic per-tick avatar simulation: the
// movement state machine, the physics integrator and the external events that
// may interrupt them. Everything here is synchronous and free of globals other
// than the read-only tuning in package config.
package movement

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
)

// MegaPhase tracks the mega-mushroom sequence.
type MegaPhase uint8

const (
	MegaNone MegaPhase = iota
	MegaGrowing
	MegaActive
	MegaShrinking
)

// Transit describes an in-progress pipe or door warp.
type Transit struct {
	Active      bool
	Door        bool
	Warped      bool
	Direction   gamemath.Vector // Travel before the warp
	Exit        gamemath.Vector // Travel after the warp
	Destination gamemath.Vector
}

// HoldRef is a weak reference to a carried entity. The core only ever
// detaches it; it never destroys what it points to.
type HoldRef uint64

// NoHold is the empty HoldRef.
const NoHold HoldRef = 0

// State is everything one avatar owns. It contains no pointers or slices so
// that copies are independent and two states can be compared with ==.
type State struct {
	Position    gamemath.Vector // Bottom centre of the hitbox
	Velocity    gamemath.Vector
	FacingRight bool
	// PrevVelocity is Velocity as it was when the last Step began.
	PrevVelocity gamemath.Vector

	Powerup         netconfig.PowerupState
	PreviousPowerup netconfig.PowerupState

	// Contact flags, recomputed every tick by Integrate.
	OnGround    bool
	WasOnGround bool
	HitLeft     bool
	HitRight    bool
	HitRoof     bool
	FloorAngle  float64
	OnIce       bool
	OnSpinner   bool

	Crouching      bool
	Sliding        bool
	Groundpound    bool
	Skidding       bool
	Turnaround     bool
	Knockback      bool
	InShell        bool
	Flying         bool
	Propeller      bool
	Drill          bool
	WallSlideLeft  bool
	WallSlideRight bool
	Frozen         bool
	StuckInBlock   bool
	Wedged         bool
	Dead           bool

	Jumping          bool // Airborne from a jump, cleared on landing
	JumpCombo        int  // 0 single, 1 double, 2 triple
	GroundpoundBlock bool // Set for the tick after a groundpound landing
	PropellerUsed    bool // One launch per airtime

	// Held buttons from the previous tick, for edge detection.
	JumpHeld   bool
	RunHeld    bool
	PowerHeld  bool
	CrouchHeld bool

	MoveDir      float64 // -1, 0 or 1, chosen by Advance for Integrate
	KnockbackVX  float64 // Horizontal speed the knockback decays from
	KnockbackDur float64
	Mega         MegaPhase
	Growth       float64 // Mega scale progress, 0..1

	Transit Transit
	Hold    HoldRef
	Timers  TimerBank
}

// NewState returns an avatar standing at pos.
func NewState(pos gamemath.Vector, p netconfig.PowerupState) State {
	return State{
		Position:        pos,
		FacingRight:     true,
		Powerup:         p,
		PreviousPowerup: p,
	}
}

// Size returns the hitbox dimensions for the current power-up and pose.
func (s *State) Size() (w, h float64) {
	w = config.Hitbox.Width
	h = config.Hitbox.SmallHeight
	if s.Powerup.IsLarge() {
		h = config.Hitbox.LargeHeight
		if s.Crouching || s.Sliding || s.InShell {
			h *= config.Hitbox.CrouchFactor
		}
	}
	scale := 1.0
	switch {
	case s.Powerup == netconfig.MiniMushroom:
		scale = config.Hitbox.MiniScale
	case s.Mega != MegaNone:
		scale = 1 + s.Growth*(config.Hitbox.MegaScale-1)
	}
	return w * scale, h * scale
}

// Hitbox returns the avatar's collision rectangle.
func (s *State) Hitbox() gamemath.Rect {
	w, h := s.Size()
	return gamemath.RectAtFeet(s.Position, w, h)
}

// megaHitbox is the footprint the avatar grows into.
func (s *State) megaHitbox() gamemath.Rect {
	w := config.Hitbox.Width * config.Hitbox.MegaScale
	h := config.Hitbox.LargeHeight * config.Hitbox.MegaScale
	return gamemath.RectAtFeet(s.Position, w, h)
}

// Facing returns 1 when facing right, -1 otherwise.
func (s *State) Facing() float64 {
	if s.FacingRight {
		return config.DirectionRight
	}
	return config.DirectionLeft
}

// Invincible reports whether contact damage is ignored.
func (s *State) Invincible() bool {
	return s.Timers.Active(TimerInvincibility) || s.Timers.Active(TimerHitInvincibility)
}

// StarPowered reports whether the avatar has star invincibility.
func (s *State) StarPowered() bool {
	return s.Timers.Active(TimerInvincibility)
}

// MegaGrowing reports whether the grow-in animation owns the avatar.
func (s *State) MegaGrowing() bool {
	return s.Mega == MegaGrowing
}

// IsMega reports whether the avatar counts as mega for contact rules.
func (s *State) IsMega() bool {
	return s.Powerup == netconfig.MegaMushroom && s.Mega != MegaNone
}

// WallSliding reports whether either wall-slide flag is set.
func (s *State) WallSliding() bool {
	return s.WallSlideLeft || s.WallSlideRight
}

// OwningModes counts the modes that take full control of velocity. It is
// never more than one after a tick.
func (s *State) OwningModes() int {
	n := 0
	for _, b := range []bool{s.Frozen, s.Knockback, s.Transit.Active, s.Groundpound, s.Flying, s.Propeller, s.Drill} {
		if b {
			n++
		}
	}
	return n
}

// controlsHorizontal reports whether the walk/run acceleration applies.
func (s *State) controlsHorizontal() bool {
	return !(s.Frozen || s.Knockback || s.Transit.Active || s.MegaGrowing() ||
		s.Groundpound || s.Drill || s.InShell || s.Sliding || s.Dead || s.Wedged)
}

// actor describes the avatar to the tile resolver.
func (s *State) actor() tiles.Actor {
	return tiles.Actor{
		Powerup:     s.Powerup,
		Groundpound: s.Groundpound,
		Drill:       s.Drill,
		InShell:     s.InShell,
	}
}

// clearModes drops every owning and pose mode.
func (s *State) clearModes() {
	s.Crouching = false
	s.Sliding = false
	s.Groundpound = false
	s.Skidding = false
	s.Turnaround = false
	s.Knockback = false
	s.InShell = false
	s.Flying = false
	s.Propeller = false
	s.Drill = false
	s.WallSlideLeft = false
	s.WallSlideRight = false
	s.Timers.Clear(TimerGroundpoundStart)
	s.Timers.Clear(TimerKnockback)
	s.Timers.Clear(TimerPropeller)
	s.Timers.Clear(TimerPropellerSpin)
	s.Timers.Clear(TimerWallSlide)
}

// StateID derives the presentation state.
func (s *State) StateID() netconfig.StateID {
	switch {
	case s.Dead:
		return netconfig.Dead
	case s.Frozen:
		return netconfig.Frozen
	case s.Wedged:
		return netconfig.Wedged
	case s.Knockback:
		return netconfig.Knockback
	case s.Transit.Active:
		return netconfig.PipeTransit
	case s.MegaGrowing():
		return netconfig.MegaGrowing
	case s.Groundpound:
		return netconfig.Groundpound
	case s.Drill:
		return netconfig.Drill
	case s.Propeller:
		return netconfig.Propeller
	case s.Flying:
		return netconfig.Flying
	case s.WallSliding():
		return netconfig.WallSlide
	case s.InShell:
		return netconfig.Shell
	case s.Sliding:
		return netconfig.Slide
	case s.Crouching:
		return netconfig.Crouch
	case !s.OnGround:
		if s.Velocity.Y > 0 && s.Jumping {
			switch s.JumpCombo {
			case 1:
				return netconfig.DoubleJump
			case 2:
				return netconfig.TripleJump
			}
			return netconfig.Jump
		}
		return netconfig.Fall
	case s.Skidding:
		return netconfig.Skid
	case s.Turnaround:
		return netconfig.Turnaround
	}
	speed := s.Velocity.X
	if speed < 0 {
		speed = -speed
	}
	switch {
	case speed >= config.Movement.SpeedStageMax[config.Movement.RunStage]-0.5:
		return netconfig.Running
	case speed > 0.01:
		return netconfig.Walk
	}
	return netconfig.Idle
}
