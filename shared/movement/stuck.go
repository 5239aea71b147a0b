package movement

import (
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
)

var diag = math.Sqrt2 / 2

// scanDirs are the eight escape directions, counter-clockwise from +X.
var scanDirs = [8]gamemath.Vector{
	{X: 1, Y: 0},
	{X: diag, Y: diag},
	{X: 0, Y: 1},
	{X: -diag, Y: diag},
	{X: -1, Y: 0},
	{X: -diag, Y: -diag},
	{X: 0, Y: -1},
	{X: diag, Y: -diag},
}

// resolveStuck frees an avatar whose hitbox overlaps solid tiles. It scans
// outward ring by ring and teleports to the first free spot. When nothing is
// free within the scan radius the avatar is wedged and nudged right once per
// wedge period. Reports whether the tick is spent on it.
func resolveStuck(ctx *SimulationContext, s *State, out *Output) bool {
	if ctx.Collider == nil {
		return false
	}
	box := s.Hitbox()
	if !ctx.Collider.Overlaps(box) {
		if s.StuckInBlock || s.Wedged {
			s.StuckInBlock = false
			s.Wedged = false
			s.Timers.Clear(TimerWedge)
		}
		return false
	}

	s.StuckInBlock = true
	s.Velocity = gamemath.Vector{}

	step := config.Hitbox.StuckScanStep
	rings := int(math.Floor(config.Hitbox.StuckMaxScan/step + 1e-9))
	for i := 1; i <= rings; i++ {
		r := float64(i) * step
		for _, d := range scanDirs {
			off := d.Scale(r)
			if ctx.Collider.Overlaps(box.Translate(off)) {
				continue
			}
			s.Position = s.Position.Add(off)
			s.StuckInBlock = false
			s.Wedged = false
			s.Timers.Clear(TimerWedge)
			out.emit(Event{Kind: EventUnstuck})
			return true
		}
	}

	if !s.Wedged {
		s.Wedged = true
		out.emit(Event{Kind: EventWedged})
	}
	if !s.Timers.Active(TimerWedge) {
		s.Position.X += config.Hitbox.WedgeNudge
		s.Timers.Set(TimerWedge, config.Timers.WedgeNudge)
	}
	return true
}
