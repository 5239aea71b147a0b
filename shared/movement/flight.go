package movement

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/netconfig"
)

func startPropeller(s *State, out *Output) bool {
	if s.Powerup != netconfig.PropellerMushroom || s.PropellerUsed || s.InShell || s.WallSliding() {
		return false
	}
	s.Crouching = false
	s.Sliding = false
	s.Jumping = false
	s.JumpCombo = 0
	s.Propeller = true
	s.PropellerUsed = true
	s.Velocity.Y = config.Movement.PropellerLaunch
	s.Timers.Set(TimerPropeller, config.Timers.Propeller)
	out.emit(Event{Kind: EventPropellerStart})
	return true
}

// propellerThrust is the launch curve: full launch speed decaying toward the
// propeller fall speed over the propeller time.
func propellerThrust(elapsed float64) float64 {
	tw := gween.New(
		float32(config.Movement.PropellerLaunch),
		float32(-config.Movement.PropellerFallSpeed),
		float32(config.Timers.Propeller),
		ease.OutExpo,
	)
	v, _ := tw.Set(float32(elapsed))
	return float64(v)
}

func advanceFlight(s *State, in InputSample, e edges, out *Output) {
	s.MoveDir = in.Horizontal()

	if s.Drill {
		s.MoveDir = 0
		s.Velocity.X = 0
		if !in.Down() && !s.Timers.Active(TimerPropellerDrill) {
			s.Drill = false
			s.Flying = true
			return
		}
		s.Velocity.Y = -config.Movement.PropellerDrillSpeed
		return
	}

	if e.crouch {
		s.Propeller = false
		s.Flying = false
		s.Drill = true
		s.Timers.Clear(TimerPropeller)
		s.Timers.Clear(TimerPropellerSpin)
		s.Timers.Set(TimerPropellerDrill, config.Timers.PropellerDrillDelay)
		s.Velocity.X = 0
		s.Velocity.Y = -config.Movement.PropellerDrillSpeed
		out.emit(Event{Kind: EventDrillStart})
		return
	}

	if s.Propeller {
		if !s.Timers.Active(TimerPropeller) {
			s.Propeller = false
			s.Flying = true
			return
		}
		s.Velocity.Y = propellerThrust(s.Timers.Elapsed(TimerPropeller, config.Timers.Propeller))
		return
	}

	if e.jump && !s.Timers.Active(TimerPropellerSpin) {
		s.Timers.Set(TimerPropellerSpin, config.Timers.PropellerSpin)
		out.emit(Event{Kind: EventPropellerSpin})
	}
}
