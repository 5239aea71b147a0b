package movement

import (
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
)

// SlopeSample is the surface angle found around the avatar before
// integration. Floor is true when it came from the floor cast.
type SlopeSample struct {
	Angle float64
	OK    bool
	Floor bool
}

// SampleSlope casts below the feet first and above the head second. When
// both hit, the floor result wins.
func SampleSlope(ctx *SimulationContext, s *State) SlopeSample {
	if ctx.Collider == nil {
		return SlopeSample{}
	}
	box := s.Hitbox()
	reach := config.Physics.GroundReach
	if a, ok := ctx.Collider.SurfaceAngle(box, true, reach); ok {
		return SlopeSample{Angle: a, OK: true, Floor: true}
	}
	if a, ok := ctx.Collider.SurfaceAngle(box, false, reach); ok {
		return SlopeSample{Angle: a, OK: true}
	}
	return SlopeSample{}
}

// Integrate applies one tick of physics to s and moves it through the level:
// (a) horizontal acceleration by speed stage and surface, (b) slope
// projection, (c) gravity scale by mode, (d) the per-mode terminal clamp.
// Contact flags are then recomputed from the collider.
func Integrate(ctx *SimulationContext, s *State, slope SlopeSample, dt float64) Output {
	var out Output
	if s.Dead || s.Frozen || s.Transit.Active || s.Wedged || s.MegaGrowing() {
		s.WasOnGround = s.OnGround
		return out
	}

	accelerate(s, dt, &out)

	if slope.OK && s.OnGround {
		applySlope(s, slope.Angle, dt)
	}

	s.Velocity.Y += config.Physics.Gravity * gravityScale(s) * dt
	if s.Groundpound && s.Timers.Active(TimerGroundpoundStart) && s.Velocity.Y < 0 {
		s.Velocity.Y = 0
	}

	s.Velocity.Y = gamemath.ClampFall(s.Velocity.Y, terminalVelocity(s))

	move(ctx, s, dt, &out)
	return out
}

// speedTables picks the stage caps and accelerations for the current surface.
func speedTables(s *State) (maxs, accs []float64) {
	m := &config.Movement
	maxs, accs = m.SpeedStageMax, m.SpeedStageAcc
	switch {
	case s.OnGround && s.OnSpinner:
		maxs, accs = m.SpinnerStageMax, m.SpinnerStageAcc
	case s.Powerup == netconfig.MegaMushroom:
		accs = m.MegaStageAcc
	case s.OnGround && s.OnIce:
		accs = m.IceStageAcc
	}
	return maxs, accs
}

// stageIndex is the first stage whose cap is above speed, capped at limit.
func stageIndex(maxs []float64, speed float64, limit int) int {
	for i := 0; i < limit && i < len(maxs); i++ {
		if speed < maxs[i] {
			return i
		}
	}
	return limit
}

func accelerate(s *State, dt float64, out *Output) {
	if !s.controlsHorizontal() {
		s.Skidding = false
		s.Turnaround = false
		return
	}
	m := &config.Movement
	maxs, accs := speedTables(s)
	facing := s.FacingRight

	capStage := m.WalkStage
	if s.RunHeld {
		capStage = m.RunStage
		if s.StarPowered() {
			capStage = m.StarStage
		}
	}
	if capStage >= len(maxs) {
		capStage = len(maxs) - 1
	}
	if capStage >= len(accs) {
		capStage = len(accs) - 1
	}
	limit := maxs[capStage]
	if s.Flying || s.Propeller {
		limit = math.Min(limit, m.FlyingHorizontalSpeed)
	}

	dir := s.MoveDir
	if s.Crouching && s.OnGround {
		dir = 0
	}
	vx := s.Velocity.X
	speed := math.Abs(vx)

	switch {
	case dir == 0:
		s.Skidding = false
		s.Turnaround = false
		if s.OnGround {
			dec := m.ButtonReleaseDec
			if s.OnIce {
				dec = m.IceButtonReleaseDec
			}
			vx = gamemath.MoveTowards(vx, 0, dec*dt)
		}

	case vx != 0 && gamemath.Sign(vx) != dir:
		if s.OnGround && (s.Skidding || speed > m.SkidThreshold) {
			if !s.Skidding {
				out.emit(Event{Kind: EventSkid})
			}
			s.Skidding = true
			s.Turnaround = false
			dec := m.SkidDec
			switch {
			case s.StarPowered():
				dec = m.SkidStarDec
			case s.OnIce:
				dec = m.SkidIceDec
			}
			vx = gamemath.MoveTowards(vx, 0, dec*dt)
			if vx == 0 {
				s.Skidding = false
				s.FacingRight = dir > 0
			}
			break
		}
		s.Skidding = false
		s.Turnaround = true
		acc := m.TurnaroundAcc
		if speed <= m.TurnaroundThreshold {
			acc = m.WalkTurnaroundAcc[stageIndex(maxs, speed, len(m.WalkTurnaroundAcc)-1)]
		}
		vx = gamemath.MoveTowards(vx, dir*limit, acc*dt)
		s.FacingRight = dir > 0

	default:
		s.Skidding = false
		s.Turnaround = false
		s.FacingRight = dir > 0
		if speed > limit {
			vx = gamemath.MoveTowards(vx, dir*limit, m.ButtonReleaseDec*dt)
			break
		}
		stage := stageIndex(maxs, speed, capStage)
		vx = dir * math.Min(speed+accs[stage]*dt, limit)
	}
	s.Velocity.X = vx
	// A wall slider keeps facing away from the wall while pushing into it.
	if s.WallSliding() {
		s.FacingRight = facing
	}
}

// applySlope keeps a grounded avatar on a sloped surface and accelerates a
// sliding one downhill.
func applySlope(s *State, angle, dt float64) {
	if math.Abs(angle) < config.Physics.SlopeMinAngle {
		return
	}
	m := &config.Movement
	if s.Sliding {
		acc := m.Slide22Acc
		if math.Abs(angle) > 30 {
			acc = m.Slide45Acc
		}
		downhill := -gamemath.Sign(angle)
		s.Velocity.X = gamemath.ClampSpeed(s.Velocity.X+downhill*acc*dt, m.SlideMaxSpeed)
	}
	if !s.Jumping {
		s.Velocity.Y = s.Velocity.X * math.Tan(angle*math.Pi/180)
	}
}

func gravityScale(s *State) float64 {
	p := &config.Physics
	switch {
	case s.Flying || s.Propeller:
		return p.FlightScale
	case s.Powerup == netconfig.MiniMushroom:
		return p.MiniScale
	case s.JumpHeld && s.Jumping && s.Velocity.Y > p.SlowRiseMinSpeed:
		return p.SlowRiseScale
	case s.Powerup == netconfig.MegaMushroom && s.Velocity.Y < 0:
		return p.NormalScale * p.MegaFallMultiplier
	}
	return p.NormalScale
}

// terminalVelocity is the fall-speed clamp for the current mode.
func terminalVelocity(s *State) float64 {
	m := &config.Movement
	switch {
	case s.Groundpound:
		return m.GroundpoundVelocity
	case s.Drill:
		return m.PropellerDrillSpeed
	case s.Propeller:
		return m.PropellerFallSpeed
	case s.Flying && s.Timers.Active(TimerPropellerSpin):
		return m.PropellerSpinFall
	case s.Flying:
		return m.FlyingTerminal
	case s.WallSliding():
		return config.Physics.WallSlideSpeed
	}
	return config.Physics.TerminalVelocity
}

// move sweeps the hitbox through the level and recomputes every contact
// flag from the result.
func move(ctx *SimulationContext, s *State, dt float64, out *Output) {
	s.WasOnGround = s.OnGround
	delta := s.Velocity.Scale(dt)

	if ctx.Collider == nil {
		s.Position = s.Position.Add(delta)
		s.OnGround, s.HitLeft, s.HitRight, s.HitRoof = false, false, false, false
		s.FloorAngle = 0
		s.OnIce, s.OnSpinner = false, false
		checkBounds(ctx, s, out)
		return
	}

	c := ctx.Collider.Move(s.Hitbox(), delta)
	s.Position = gamemath.Vector{X: c.Box.X + c.Box.W/2, Y: c.Box.Y}
	s.OnGround = c.OnGround
	s.HitLeft = c.HitLeft
	s.HitRight = c.HitRight
	s.HitRoof = c.HitRoof
	s.FloorAngle = 0
	if s.OnGround {
		s.FloorAngle = c.FloorAngle
	}
	s.OnIce, s.OnSpinner = surface(ctx, c.Floor)

	if s.HitRoof && s.Velocity.Y > 0 {
		s.Velocity.Y = 0
		purpose := tiles.PurposeHeadBump
		if s.IsMega() && ctx.Rules.MegaBreaksTiles {
			purpose = tiles.PurposeMegaBreak
		}
		for _, t := range c.Roof {
			out.request(t, tiles.FromBelow, purpose)
		}
		if len(c.Roof) > 0 {
			out.emit(Event{Kind: EventHeadBump, Coord: c.Roof[0]})
		}
	}

	hitLeft := s.HitLeft && s.Velocity.X < 0
	hitRight := s.HitRight && s.Velocity.X > 0
	if hitLeft || hitRight {
		side, from := c.Right, tiles.FromLeft
		if hitLeft {
			side, from = c.Left, tiles.FromRight
		}
		switch {
		case s.InShell:
			for _, t := range side {
				out.request(t, from, tiles.PurposeShell)
			}
		case s.IsMega() && ctx.Rules.MegaBreaksTiles:
			for _, t := range side {
				out.request(t, from, tiles.PurposeMegaBreak)
			}
		}
		out.sideHit = true
		out.sideVX = s.Velocity.X
		s.Velocity.X = 0
	}

	if s.OnGround && s.Velocity.Y < 0 {
		s.Velocity.Y = 0
	}

	if s.OnGround && !s.WasOnGround {
		land(s, c, out)
	}
	if !s.OnGround && s.WasOnGround && !s.Jumping {
		s.Timers.Set(TimerCoyote, config.Timers.Coyote)
	}

	checkBounds(ctx, s, out)
}

// checkBounds wraps looping levels and reports falling below the level.
func checkBounds(ctx *SimulationContext, s *State, out *Output) {
	b := ctx.Bounds
	if b.MaxX <= b.MinX {
		return
	}
	if ctx.Rules.LoopingLevel {
		s.Position.X = gamemath.Wrap(s.Position.X, b.MinX, b.MaxX)
	}
	if s.Position.Y < b.MinY {
		out.emit(Event{Kind: EventFellOut})
	}
}

func land(s *State, c Contact, out *Output) {
	out.emit(Event{Kind: EventLanded})
	s.PropellerUsed = false
	s.Flying = false
	s.Propeller = false
	s.Timers.Clear(TimerPropeller)
	s.Timers.Clear(TimerPropellerSpin)
	s.Timers.Clear(TimerWallSlide)

	if s.Jumping && s.JumpCombo < 2 {
		s.Timers.Set(TimerJumpCombo, config.Timers.ComboWindow)
	} else {
		s.JumpCombo = 0
	}
	s.Jumping = false

	if s.Groundpound || s.Drill {
		out.poundLanded = true
		for _, t := range c.Floor {
			out.request(t, tiles.FromAbove, tiles.PurposeGroundpound)
		}
	}
}

func surface(ctx *SimulationContext, floor []tiles.Coord) (ice, spinner bool) {
	if ctx.Tiles == nil {
		return false, false
	}
	for _, c := range floor {
		t, ok := ctx.Tiles.Tile(c)
		if !ok {
			continue
		}
		switch t.Behavior {
		case tiles.Ice:
			ice = true
		case tiles.Spinner:
			spinner = true
		}
	}
	return ice, spinner
}
