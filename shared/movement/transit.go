package movement

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
)

// advanceTransit moves the avatar through a pipe or door. The first half of
// the pipe time travels along Direction, then the avatar is teleported to
// Destination and spends the second half travelling along Exit.
func advanceTransit(s *State, dt float64, out *Output) {
	t := &s.Transit
	s.Velocity = gamemath.Vector{}

	if !t.Warped && s.Timers.Get(TimerPipe) <= config.Timers.Pipe/2 {
		s.Position = t.Destination
		t.Warped = true
		out.emit(Event{Kind: EventTransitWarp})
	}

	if !s.Timers.Active(TimerPipe) {
		*t = Transit{}
		out.emit(Event{Kind: EventTransitEnd})
		return
	}
	if t.Door {
		return
	}

	dir := t.Direction
	if t.Warped {
		dir = t.Exit
	}
	s.Position = s.Position.Add(dir.Scale(config.Movement.PipeSpeed * dt))
}
