package netsync

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
)

// ErrBadTimestep is returned when the fixed step is not positive.
var ErrBadTimestep = errors.New("netsync: fixed timestep must be positive")

// Snapshot is the kinematic part of a remote update that travels next to
// the delta.
type Snapshot struct {
	Position gamemath.Vector
	Velocity gamemath.Vector
	Powerup  netconfig.PowerupState
}

// SnapshotOf captures s.
func SnapshotOf(s *movement.State) Snapshot {
	return Snapshot{Position: s.Position, Velocity: s.Velocity, Powerup: s.Powerup}
}

// Validate rejects snapshots no honest sender produces: non-finite values,
// speeds above config.Net.MaxSnapshotSpeed and positions more than
// config.Net.SnapshotMargin outside b. A zero-width b skips the position
// range check.
func (s Snapshot) Validate(b movement.Bounds) error {
	for _, v := range [...]float64{s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite snapshot %+v", ErrMalformedDelta, s)
		}
	}
	if !s.Powerup.Valid() {
		return fmt.Errorf("%w: powerup %d", ErrMalformedDelta, s.Powerup)
	}
	limit := config.Net.MaxSnapshotSpeed
	if math.Abs(s.Velocity.X) > limit || math.Abs(s.Velocity.Y) > limit {
		return fmt.Errorf("%w: velocity %+v", ErrMalformedDelta, s.Velocity)
	}
	if b.MaxX <= b.MinX {
		return nil
	}
	m := config.Net.SnapshotMargin
	p := s.Position
	if p.X < b.MinX-m || p.X > b.MaxX+m || p.Y < b.MinY-m || (b.MaxY > b.MinY && p.Y > b.MaxY+m) {
		return fmt.Errorf("%w: position %+v", ErrMalformedDelta, p)
	}
	return nil
}

// Report describes one reconciliation.
type Report struct {
	Lag       time.Duration
	FullTicks int
	Partial   time.Duration
	// Degraded is set when the lag needed more than MaxTicks full ticks and
	// the replay was cut short.
	Degraded bool
	Events   []movement.Event
}

// Resimulator replays remote avatars forward by the packet's lag.
type Resimulator struct {
	MaxTicks int

	ctx *movement.SimulationContext
}

// NewResimulator creates a resimulator that never writes the tile grid.
func NewResimulator(ctx *movement.SimulationContext) *Resimulator {
	return &Resimulator{MaxTicks: config.Net.MaxResimTicks, ctx: ctx.DryRun()}
}

// NewAuthoritative creates a resimulator whose replays resolve tile
// reactions for real. Only the tile owner should use it.
func NewAuthoritative(ctx *movement.SimulationContext) *Resimulator {
	return &Resimulator{MaxTicks: config.Net.MaxResimTicks, ctx: ctx}
}

// FixedStep returns the configured fixed tick as a duration.
func FixedStep() time.Duration {
	return time.Duration(config.Net.FixedDeltaTime * float64(time.Second))
}

// Ticks splits lag into whole fixed steps and the remainder. Negative lag
// is treated as zero.
func Ticks(lag, fixedDt time.Duration) (full int, partial time.Duration) {
	if lag <= 0 || fixedDt <= 0 {
		return 0, 0
	}
	return int(lag / fixedDt), lag % fixedDt
}

// Apply validates delta, copies its flags onto remote and steps remote
// forward by now-packetTime: full ticks of fixedDt followed by one partial
// tick. remote is left untouched when delta is rejected.
func (r *Resimulator) Apply(remote *movement.State, delta NetworkDelta, packetTime, now, fixedDt time.Duration) (Report, error) {
	if fixedDt <= 0 {
		return Report{}, ErrBadTimestep
	}
	if err := delta.Validate(); err != nil {
		return Report{}, fmt.Errorf("apply delta: %w", err)
	}

	rep := Report{Lag: max(now-packetTime, 0)}
	rep.FullTicks, rep.Partial = Ticks(rep.Lag, fixedDt)
	if r.MaxTicks > 0 && rep.FullTicks > r.MaxTicks {
		rep.FullTicks = r.MaxTicks
		rep.Degraded = true
	}

	delta.ApplyTo(remote)
	in := delta.Input()
	step := fixedDt.Seconds()
	for i := 0; i < rep.FullTicks; i++ {
		rep.Events = append(rep.Events, movement.Step(r.ctx, remote, in, step).Events...)
	}
	if rep.Partial > 0 {
		rep.Events = append(rep.Events, movement.Step(r.ctx, remote, in, rep.Partial.Seconds()).Events...)
	}
	return rep, nil
}

// ApplySnapshot resets remote's kinematics to snap and then behaves like
// Apply.
func (r *Resimulator) ApplySnapshot(remote *movement.State, snap Snapshot, delta NetworkDelta, packetTime, now, fixedDt time.Duration) (Report, error) {
	if fixedDt <= 0 {
		return Report{}, ErrBadTimestep
	}
	if err := snap.Validate(r.ctx.Bounds); err != nil {
		return Report{}, fmt.Errorf("apply snapshot: %w", err)
	}
	if err := delta.Validate(); err != nil {
		return Report{}, fmt.Errorf("apply snapshot: %w", err)
	}
	remote.Position = snap.Position
	remote.Velocity = snap.Velocity
	remote.Powerup = snap.Powerup
	return r.Apply(remote, delta, packetTime, now, fixedDt)
}
