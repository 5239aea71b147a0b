package movement

import "github.com/automoto/jumpsync/shared/tiles"

// StepResult is everything one tick produced for an avatar.
type StepResult struct {
	Requests []tiles.Request
	Results  []tiles.Result
	Events   []Event
	Slope    SlopeSample
}

// Step runs one full tick: Advance, SampleSlope, Integrate, tile
// interactions and the timer countdown, in that order. It is the single
// entry point used for local, server-side and resimulated avatars.
func Step(ctx *SimulationContext, s *State, in InputSample, dt float64) StepResult {
	s.PrevVelocity = s.Velocity
	out := Advance(ctx, s, in, dt)
	slope := SampleSlope(ctx, s)
	out.merge(Integrate(ctx, s, slope, dt))

	results := ctx.resolve(out.Requests, s.actor())
	ApplyTileResults(s, &out, results)
	s.Timers.Tick(dt)

	return StepResult{
		Requests: out.Requests,
		Results:  results,
		Events:   out.Events,
		Slope:    slope,
	}
}

// ApplyTileResults feeds tile interaction outcomes back into the state.
// A groundpound keeps going only if every tile under the footprint broke;
// a shell or mega avatar keeps its speed only if every tile it hit broke.
func ApplyTileResults(s *State, out *Output, results []tiles.Result) {
	poundThrough, anyPound := true, false
	sideThrough, anySide := true, false

	for i, req := range out.Requests {
		res := tiles.None
		if i < len(results) {
			res = results[i]
		}
		switch {
		case req.Purpose == tiles.PurposeGroundpound:
			anyPound = true
			if res != tiles.Reacted {
				poundThrough = false
			}
		case req.From == tiles.FromLeft || req.From == tiles.FromRight:
			anySide = true
			if res != tiles.Reacted {
				sideThrough = false
			}
		}
	}

	if out.poundLanded {
		if anyPound && poundThrough {
			s.OnGround = false
		} else {
			s.Groundpound = false
			s.Drill = false
			s.Timers.Clear(TimerPropellerDrill)
			s.GroundpoundBlock = true
			out.emit(Event{Kind: EventGroundpoundLand})
		}
	}

	if out.sideHit {
		switch {
		case anySide && sideThrough:
			s.Velocity.X = out.sideVX
			s.HitLeft = false
			s.HitRight = false
		case s.InShell:
			s.Velocity.X = -out.sideVX
			s.FacingRight = !s.FacingRight
		}
	}
}
