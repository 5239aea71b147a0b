package movement

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
)

// edges are the buttons pressed this tick that were up the tick before.
type edges struct {
	jump   bool
	power  bool
	crouch bool
}

// Advance runs transition selection for one tick. Modes are tried in
// priority order and the first one that owns the avatar ends the tick's
// decisions: frozen, knockback, transit, mega growth, groundpound, flight,
// then the wall, crouch, walk and jump layers which may combine.
//
// Advance never moves the avatar through the level; Integrate does that.
func Advance(ctx *SimulationContext, s *State, in InputSample, dt float64) Output {
	var out Output

	e := edges{
		jump:   in.Jump && !s.JumpHeld,
		power:  in.PowerAction && !s.PowerHeld,
		crouch: in.Down() && !s.CrouchHeld,
	}
	s.JumpHeld = in.Jump
	s.RunHeld = in.Run
	s.PowerHeld = in.PowerAction
	s.CrouchHeld = in.Down()

	gpBlocked := s.GroundpoundBlock
	s.GroundpoundBlock = false
	s.MoveDir = 0

	switch {
	case s.Dead:
		s.Velocity = gamemath.Vector{}
		return out
	case s.Frozen:
		advanceFrozen(s, &out)
		return out
	case s.Knockback:
		advanceKnockback(s, &out)
		return out
	case s.Transit.Active:
		advanceTransit(s, dt, &out)
		return out
	}

	if resolveStuck(ctx, s, &out) {
		return out
	}

	if s.MegaGrowing() {
		advanceMegaGrowth(ctx, s, &out)
		return out
	}
	advanceMega(s, &out)

	if s.Groundpound {
		advanceGroundpound(s, &out)
		return out
	}

	if s.Flying || s.Propeller || s.Drill {
		advanceFlight(s, in, e, &out)
		return out
	}

	s.MoveDir = in.Horizontal()
	if s.Timers.Active(TimerWallJump) {
		s.MoveDir = 0
	}

	if !s.OnGround && e.crouch && !gpBlocked && startGroundpound(s, &out) {
		return out
	}
	if e.power && startPropeller(s, &out) {
		return out
	}
	if e.power {
		powerAction(s, &out)
	}

	if advanceWallSlide(s, e, &out) {
		return out
	}
	advanceCrouch(s, in, &out)
	advanceJump(s, e, &out)
	return out
}

func advanceFrozen(s *State, out *Output) {
	s.Velocity = gamemath.Vector{}
	if s.Timers.Active(TimerFreezeBreak) {
		return
	}
	s.Frozen = false
	s.Timers.Clear(TimerFreeze)
	out.emit(Event{Kind: EventUnfrozen})
}

func powerAction(s *State, out *Output) {
	if s.Crouching || s.InShell || s.Sliding || s.Timers.Active(TimerFireball) {
		return
	}
	switch s.Powerup {
	case netconfig.FireFlower, netconfig.IceFlower:
		s.Timers.Set(TimerFireball, config.Timers.Fireball)
		out.emit(Event{Kind: EventPowerAction, Powerup: s.Powerup})
	}
}
