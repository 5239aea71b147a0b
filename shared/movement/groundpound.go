package movement

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
)

func startGroundpound(s *State, out *Output) bool {
	if s.InShell || s.WallSliding() || s.Powerup == netconfig.MegaMushroom {
		return false
	}
	s.Crouching = false
	s.Sliding = false
	s.Jumping = false
	s.Groundpound = true
	s.Velocity = gamemath.Vector{Y: config.Movement.GroundpoundHop}
	s.Timers.Set(TimerGroundpoundStart, config.Timers.GroundpoundStart)
	out.emit(Event{Kind: EventGroundpoundStart})
	return true
}

// advanceGroundpound holds the avatar during the falling pause, then drives
// the fixed-speed descent. Landing is handled after integration.
func advanceGroundpound(s *State, out *Output) {
	s.Velocity.X = 0
	if s.Timers.Active(TimerGroundpoundStart) {
		return
	}
	s.Velocity.Y = -config.Movement.GroundpoundVelocity
}
