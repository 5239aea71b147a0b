package netsync

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
)

const fixedDt = 16600 * time.Microsecond

func flatLevel() (*level.Level, *movement.SimulationContext) {
	l := level.New("flat", 60, 20)
	for x := 0; x < 60; x++ {
		l.SetTile(tiles.Coord{X: x, Y: 0}, tiles.Tile{Behavior: tiles.Solid})
	}
	return l, movement.NewContext(l, tiles.NewResolver(l), l.Bounds())
}

func standing(x float64) movement.State {
	s := movement.NewState(gamemath.Vector{X: x, Y: 1}, netconfig.Small)
	s.OnGround = true
	return s
}

func runJump(t *testing.T, s *movement.State) NetworkDelta {
	t.Helper()
	in := movement.InputSample{Joystick: gamemath.Vector{X: 1}, Run: true, Jump: true}
	d, err := FromState(s, in)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestTicksSplit(t *testing.T) {
	full, partial := Ticks(120*time.Millisecond, fixedDt)
	if full != 7 {
		t.Errorf("full = %d, want 7", full)
	}
	if want := 120*time.Millisecond - 7*fixedDt; partial != want {
		t.Errorf("partial = %v, want %v", partial, want)
	}

	if full, partial := Ticks(-5*time.Millisecond, fixedDt); full != 0 || partial != 0 {
		t.Errorf("negative lag = %d, %v", full, partial)
	}
	if full, partial := Ticks(3*fixedDt, fixedDt); full != 3 || partial != 0 {
		t.Errorf("exact lag = %d, %v", full, partial)
	}
}

func TestApplyMatchesManualReplay(t *testing.T) {
	_, ctx := flatLevel()
	r := NewResimulator(ctx)

	a := standing(10)
	d := runJump(t, &a)
	b := a

	rep, err := r.Apply(&a, d, 0, 120*time.Millisecond, fixedDt)
	if err != nil {
		t.Fatal(err)
	}
	if rep.FullTicks != 7 || rep.Degraded {
		t.Fatalf("report = %+v", rep)
	}

	replay := ctx.DryRun()
	d.ApplyTo(&b)
	in := d.Input()
	for i := 0; i < 7; i++ {
		movement.Step(replay, &b, in, fixedDt.Seconds())
	}
	movement.Step(replay, &b, in, rep.Partial.Seconds())

	if a != b {
		t.Errorf("resimulated state differs from manual replay:\n%+v\n%+v", a, b)
	}
	if a.OnGround || a.Position.X <= 10 {
		t.Errorf("remote did not run and jump: %+v", a.Position)
	}
}

func TestApplyClampsExtremeLag(t *testing.T) {
	_, ctx := flatLevel()
	r := NewResimulator(ctx)
	s := standing(10)

	rep, err := r.Apply(&s, runJump(t, &s), 0, 5*time.Second, fixedDt)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Degraded || rep.FullTicks != config.Net.MaxResimTicks {
		t.Errorf("report = %+v, want degraded at %d ticks", rep, config.Net.MaxResimTicks)
	}
}

func TestApplyFutureTimestamp(t *testing.T) {
	_, ctx := flatLevel()
	r := NewResimulator(ctx)
	s := standing(10)
	before := s.Position

	rep, err := r.Apply(&s, runJump(t, &s), time.Second, 900*time.Millisecond, fixedDt)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Lag != 0 || rep.FullTicks != 0 || rep.Partial != 0 {
		t.Errorf("report = %+v, want no replay", rep)
	}
	if s.Position != before {
		t.Error("avatar moved without any lag")
	}
}

func TestApplyRejectsWithoutMutation(t *testing.T) {
	_, ctx := flatLevel()
	r := NewResimulator(ctx)
	s := standing(10)
	before := s

	bad := NetworkDelta{}
	bad.Set(FlagFrozen, true)
	bad.Set(FlagDrill, true)
	if _, err := r.Apply(&s, bad, 0, 50*time.Millisecond, fixedDt); !errors.Is(err, ErrMalformedDelta) {
		t.Errorf("err = %v, want ErrMalformedDelta", err)
	}
	if _, err := r.Apply(&s, NetworkDelta{}, 0, 50*time.Millisecond, 0); !errors.Is(err, ErrBadTimestep) {
		t.Errorf("err = %v, want ErrBadTimestep", err)
	}
	snap := Snapshot{Position: gamemath.Vector{X: 1, Y: 1}, Powerup: netconfig.PowerupCount}
	if _, err := r.ApplySnapshot(&s, snap, NetworkDelta{}, 0, 0, fixedDt); !errors.Is(err, ErrMalformedDelta) {
		t.Errorf("err = %v, want ErrMalformedDelta", err)
	}
	if s != before {
		t.Error("rejected delta mutated the remote state")
	}
}

func TestApplySnapshotRejectsBadKinematics(t *testing.T) {
	_, ctx := flatLevel()
	r := NewAuthoritative(ctx)
	var d NetworkDelta
	d.Set(FlagOnGround, true)

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"nan position", Snapshot{Position: gamemath.Vector{X: math.NaN(), Y: math.Inf(1)}}},
		{"infinite velocity", Snapshot{Position: gamemath.Vector{X: 10, Y: 1}, Velocity: gamemath.Vector{X: math.Inf(-1)}}},
		{"huge velocity", Snapshot{Position: gamemath.Vector{X: 10, Y: 1}, Velocity: gamemath.Vector{Y: 1e12}}},
		{"just over the cap", Snapshot{Position: gamemath.Vector{X: 10, Y: 1}, Velocity: gamemath.Vector{X: config.Net.MaxSnapshotSpeed + 1}}},
		{"far left of the level", Snapshot{Position: gamemath.Vector{X: -config.Net.SnapshotMargin - 1, Y: 1}}},
		{"far above the level", Snapshot{Position: gamemath.Vector{X: 10, Y: 20 + config.Net.SnapshotMargin + 1}}},
		{"far below the level", Snapshot{Position: gamemath.Vector{X: 10, Y: -1e9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := standing(10)
			before := s
			_, err := r.ApplySnapshot(&s, tt.snap, d, 0, 50*time.Millisecond, fixedDt)
			if !errors.Is(err, ErrMalformedDelta) {
				t.Errorf("err = %v, want ErrMalformedDelta", err)
			}
			if s != before {
				t.Error("rejected snapshot mutated the state")
			}
		})
	}

	ok := Snapshot{Position: gamemath.Vector{X: 61, Y: 25}, Velocity: gamemath.Vector{X: 20, Y: -20}}
	if err := ok.Validate(ctx.Bounds); err != nil {
		t.Errorf("in-margin snapshot rejected: %v", err)
	}
	if err := (Snapshot{Position: gamemath.Vector{X: 1e6}}).Validate(movement.Bounds{}); err != nil {
		t.Errorf("unbounded context rejected position: %v", err)
	}
}

func TestApplySnapshotResetsKinematics(t *testing.T) {
	_, ctx := flatLevel()
	r := NewResimulator(ctx)
	s := standing(10)

	snap := Snapshot{Position: gamemath.Vector{X: 20, Y: 1}, Powerup: netconfig.FireFlower}
	var d NetworkDelta
	d.Set(FlagOnGround, true)
	d.Set(FlagFacingRight, true)
	if _, err := r.ApplySnapshot(&s, snap, d, 0, 0, fixedDt); err != nil {
		t.Fatal(err)
	}
	if s.Position != snap.Position || s.Powerup != netconfig.FireFlower {
		t.Errorf("state = %+v", s)
	}
	if got := SnapshotOf(&s); got != snap {
		t.Errorf("SnapshotOf = %+v, want %+v", got, snap)
	}
}

func TestResimNeverBreaksTiles(t *testing.T) {
	l, ctx := flatLevel()
	brick := tiles.Coord{X: 10, Y: 3}
	l.SetTile(brick, tiles.Tile{Behavior: tiles.Breakable})
	r := NewResimulator(ctx)

	s := movement.NewState(gamemath.Vector{X: 10.5, Y: 1}, netconfig.Mushroom)
	s.OnGround = true
	d, err := FromState(&s, movement.InputSample{Jump: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Apply(&s, d, 0, time.Second, fixedDt); err != nil {
		t.Fatal(err)
	}
	if tile, ok := l.GetTileBehavior(brick); !ok || tile.Behavior != tiles.Breakable {
		t.Error("resimulation broke a brick")
	}

	auth := NewAuthoritative(ctx)
	s = movement.NewState(gamemath.Vector{X: 10.5, Y: 1}, netconfig.Mushroom)
	s.OnGround = true
	if _, err := auth.Apply(&s, d, 0, time.Second, fixedDt); err != nil {
		t.Fatal(err)
	}
	if _, ok := l.GetTileBehavior(brick); ok {
		t.Error("authoritative replay left the brick")
	}
}

func TestSerializerThresholds(t *testing.T) {
	z := NewSerializer()
	s := standing(5)
	idle := movement.InputSample{}

	if _, ok := z.Serialize(&s, idle, 0); !ok {
		t.Fatal("first delta not sent")
	}
	if _, ok := z.Serialize(&s, idle, 10*time.Millisecond); ok {
		t.Error("unchanged delta sent before the resend interval")
	}

	nudge := movement.InputSample{Joystick: gamemath.Vector{X: config.Net.JoystickEpsilon / 2}}
	if _, ok := z.Serialize(&s, nudge, 20*time.Millisecond); ok {
		t.Error("sub-epsilon joystick move sent")
	}
	push := movement.InputSample{Joystick: gamemath.Vector{X: 0.5}}
	if _, ok := z.Serialize(&s, push, 30*time.Millisecond); !ok {
		t.Error("joystick move not sent")
	}

	s.Crouching = true
	if _, ok := z.Serialize(&s, push, 40*time.Millisecond); !ok {
		t.Error("flag change not sent")
	}
	if _, ok := z.Serialize(&s, push, 50*time.Millisecond); ok {
		t.Error("repeat sent early")
	}
	if _, ok := z.Serialize(&s, push, 40*time.Millisecond+z.Resend); !ok {
		t.Error("resend interval ignored")
	}

	wild := movement.InputSample{Joystick: gamemath.Vector{X: 3}}
	d, _ := z.Serialize(&s, wild, time.Hour)
	if d.Joystick().X != 1 {
		t.Errorf("joystick not clamped: %v", d.Joystick().X)
	}
}
