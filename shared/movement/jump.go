package movement

import (
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
)

// comboSpeedSlack is how far below the run cap a combo jump still counts as
// "at top speed".
const comboSpeedSlack = 0.5

func advanceJump(s *State, e edges, out *Output) {
	buffered := s.OnGround && s.Timers.Active(TimerJumpBuffer)
	if !e.jump && !buffered {
		return
	}

	canJump := s.OnGround || s.Timers.Active(TimerCoyote)
	if !canJump || s.Skidding {
		if e.jump {
			s.Timers.Set(TimerJumpBuffer, config.Timers.JumpBuffer)
		}
		return
	}

	s.Timers.Clear(TimerJumpBuffer)
	s.Timers.Clear(TimerCoyote)
	s.Sliding = false

	if s.OnGround && s.OnSpinner {
		s.Velocity.Y = config.Movement.SpinnerLaunch
		s.Flying = true
		s.Jumping = false
		s.JumpCombo = 0
		s.Timers.Clear(TimerJumpCombo)
		out.emit(Event{Kind: EventSpinnerLaunch})
		return
	}

	tier := nextComboTier(s)
	s.Timers.Clear(TimerJumpCombo)
	s.JumpCombo = tier
	s.Jumping = true
	s.Velocity.Y = jumpVelocity(s, tier)
	out.emit(Event{Kind: EventJump, Tier: tier})
}

// nextComboTier picks single, double or triple. Combos only chain while the
// combo window from the previous landing is open, the avatar is at run speed
// and it is facing the way it moves.
func nextComboTier(s *State) int {
	if !s.Timers.Active(TimerJumpCombo) || s.Skidding || s.Crouching || s.InShell {
		return 0
	}
	if s.Powerup == netconfig.MegaMushroom || s.JumpCombo >= 2 {
		return 0
	}
	runMax := config.Movement.SpeedStageMax[config.Movement.RunStage]
	if math.Abs(s.Velocity.X) < runMax-comboSpeedSlack {
		return 0
	}
	if (s.Velocity.X > 0) != s.FacingRight {
		return 0
	}
	return s.JumpCombo + 1
}

// jumpVelocity is the launch speed for a jump of the given combo tier.
func jumpVelocity(s *State, tier int) float64 {
	m := &config.Movement
	runMax := m.SpeedStageMax[m.RunStage]

	v := m.JumpVelocity
	if s.Powerup == netconfig.MegaMushroom {
		v = m.MegaJumpVelocity
	}
	v += m.RunJumpBonus * gamemath.Clamp(math.Abs(s.Velocity.X)/runMax, 0, 1)

	switch tier {
	case 1:
		v += m.DoubleJumpBoost
	case 2:
		v += m.TripleJumpBoost
	}
	if s.Powerup == netconfig.MiniMushroom {
		v *= m.MiniJumpFactor
	}
	return v
}

func advanceCrouch(s *State, in InputSample, out *Output) {
	m := &config.Movement
	down := in.Down()

	if s.InShell {
		if !in.Run || s.Powerup != netconfig.BlueShell {
			s.InShell = false
			out.emit(Event{Kind: EventShellEnd})
			return
		}
		s.Velocity.X = s.Facing() * m.ShellSpeed
		return
	}

	if s.Sliding {
		flat := math.Abs(s.FloorAngle) < config.Physics.SlopeMinAngle
		if s.OnGround && flat && math.Abs(s.Velocity.X) < m.SlideMinSpeed {
			s.Sliding = false
			s.Crouching = down
		}
		return
	}

	if !s.OnGround {
		if !down {
			s.Crouching = false
		}
		return
	}

	if !down || s.Powerup == netconfig.MegaMushroom {
		s.Crouching = false
		return
	}

	runMax := m.SpeedStageMax[m.RunStage]
	if s.Powerup == netconfig.BlueShell && in.Run && math.Abs(s.Velocity.X) >= runMax-comboSpeedSlack {
		s.Crouching = false
		s.InShell = true
		s.Velocity.X = s.Facing() * m.ShellSpeed
		out.emit(Event{Kind: EventShellStart})
		return
	}

	if math.Abs(s.FloorAngle) >= m.SlopeSlideAngle {
		s.Crouching = false
		s.Sliding = true
		out.emit(Event{Kind: EventSlide})
		return
	}

	s.Crouching = true
}
