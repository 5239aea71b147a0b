package movement

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
)

func growthCurve(from, to, elapsed, total float64) float64 {
	v, _ := gween.New(float32(from), float32(to), float32(total), ease.OutCubic).Set(float32(elapsed))
	return float64(v)
}

// advanceMegaGrowth plays the grow-in. If the full-size footprint would
// overlap a solid tile the growth is cancelled and the previous power-up
// restored.
func advanceMegaGrowth(ctx *SimulationContext, s *State, out *Output) {
	s.Velocity = gamemath.Vector{}

	if ctx.Collider != nil && ctx.Collider.Overlaps(s.megaHitbox()) {
		cancelMega(s, out)
		return
	}

	if !s.Timers.Active(TimerGiantStart) {
		s.Mega = MegaActive
		s.Growth = 1
		s.Timers.Set(TimerGiant, config.Timers.Giant)
		out.emit(Event{Kind: EventMegaGrown})
		return
	}

	total := config.Timers.GiantStart
	s.Growth = growthCurve(0, 1, s.Timers.Elapsed(TimerGiantStart, total), total)
}

func cancelMega(s *State, out *Output) {
	s.Powerup = s.PreviousPowerup
	s.Mega = MegaNone
	s.Growth = 0
	s.Timers.Clear(TimerGiantStart)
	out.emit(Event{Kind: EventMegaCancelled, Powerup: s.Powerup})
}

// advanceMega runs the non-owning mega phases: the timed giant state and the
// shrink back to a mushroom.
func advanceMega(s *State, out *Output) {
	switch s.Mega {
	case MegaActive:
		if !s.Timers.Active(TimerGiant) {
			s.Mega = MegaShrinking
			s.Timers.Set(TimerGiantEnd, config.Timers.GiantEnd)
		}
	case MegaShrinking:
		if !s.Timers.Active(TimerGiantEnd) {
			s.Mega = MegaNone
			s.Growth = 0
			s.Powerup = netconfig.Mushroom
			s.PreviousPowerup = netconfig.Mushroom
			s.Timers.Set(TimerHitInvincibility, config.Collision.InvincibleOnPowerup)
			out.emit(Event{Kind: EventMegaEnd})
			return
		}
		total := config.Timers.GiantEnd
		s.Growth = growthCurve(1, 0, s.Timers.Elapsed(TimerGiantEnd, total), total)
	}
}
