package movement

import "github.com/automoto/jumpsync/config"

// advanceWallSlide handles wall sliding and wall jumps. It reports whether
// the avatar is on the wall this tick.
func advanceWallSlide(s *State, e edges, out *Output) bool {
	wasSliding := s.WallSliding()
	s.WallSlideLeft = false
	s.WallSlideRight = false

	if s.OnGround || s.InShell || s.IsMega() || s.Timers.Active(TimerWallJump) {
		s.Timers.Clear(TimerWallSlide)
		return false
	}

	if (s.HitLeft && s.MoveDir < 0) || (s.HitRight && s.MoveDir > 0) {
		s.Timers.Set(TimerWallSlide, config.Timers.WallSlideWindow)
	}
	if !s.HitLeft && !s.HitRight {
		s.Timers.Clear(TimerWallSlide)
		return false
	}
	if !s.Timers.Active(TimerWallSlide) || s.Velocity.Y > 0 {
		return false
	}

	wallLeft := s.HitLeft
	if e.jump {
		wallJump(s, wallLeft, out)
		return true
	}

	s.WallSlideLeft = wallLeft
	s.WallSlideRight = !wallLeft
	s.FacingRight = wallLeft
	s.Crouching = false
	s.Jumping = false
	s.JumpCombo = 0
	if !wasSliding {
		out.emit(Event{Kind: EventWallSlide})
	}
	return true
}

func wallJump(s *State, wallLeft bool, out *Output) {
	away := config.DirectionLeft
	if wallLeft {
		away = config.DirectionRight
	}
	s.MoveDir = 0
	s.Velocity.X = away * config.Movement.WallJumpHSpeed
	s.Velocity.Y = config.Movement.WallJumpVSpeed
	s.FacingRight = wallLeft
	s.Jumping = true
	s.JumpCombo = 0

	s.Timers.Clear(TimerWallSlide)
	s.Timers.Clear(TimerJumpBuffer)
	s.Timers.Clear(TimerCoyote)
	s.Timers.Set(TimerWallJump, config.Timers.WallJumpBlock)
	out.emit(Event{Kind: EventWallJump})
}
