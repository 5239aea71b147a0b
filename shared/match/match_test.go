package match

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/interaction"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
	"github.com/automoto/jumpsync/shared/tiles"
)

const dt = 1.0 / 60.0

func flatMatch(w, h int) *Match {
	l := level.New("flat", w, h)
	for x := 0; x < w; x++ {
		l.SetTile(tiles.Coord{X: x, Y: 0}, tiles.Tile{Behavior: tiles.Solid})
	}
	return New(l, config.DefaultRules())
}

func place(a *Avatar, x, y float64) {
	a.State = movement.NewState(gamemath.Vector{X: x, Y: y}, netconfig.Small)
}

func hasEvent(res TickResult, id uint32, kind movement.EventKind) bool {
	for _, e := range res.Events {
		if e.ID == id && e.Event.Kind == kind {
			return true
		}
	}
	return false
}

func TestJoinLeave(t *testing.T) {
	m := flatMatch(20, 10)
	m.Join(7)
	m.Join(3)
	first := m.Join(7)

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if again := m.Join(7); again != first {
		t.Error("joining twice created a second avatar")
	}
	ids := []uint32{}
	for _, a := range m.Avatars() {
		ids = append(ids, a.ID)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Errorf("order = %v, want [3 7]", ids)
	}

	if !m.Leave(3) || m.Leave(3) {
		t.Error("Leave should succeed exactly once")
	}
	if _, ok := m.Avatar(3); ok {
		t.Error("avatar 3 still present")
	}
}

func TestStompBetweenAvatars(t *testing.T) {
	m := flatMatch(30, 10)
	top, bottom := m.Join(1), m.Join(2)
	place(top, 10, 1.6)
	place(bottom, 10, 1)
	bottom.Stars = 3

	res := m.Step(dt)

	if len(res.Collisions) != 2 {
		t.Fatalf("collisions = %+v, want one per avatar", res.Collisions)
	}
	for _, c := range res.Collisions {
		switch c.Target {
		case 1:
			if c.Outcome.Kind != interaction.Bounce {
				t.Errorf("top outcome = %v, want bounce", c.Outcome.Kind)
			}
		case 2:
			if c.Outcome.Kind != interaction.Knockback || c.Outcome.Stars != config.Collision.StarsNormal {
				t.Errorf("bottom outcome = %+v", c.Outcome)
			}
		}
	}
	if top.State.Velocity.Y != config.Movement.StompBounce {
		t.Errorf("top vy = %v, want %v", top.State.Velocity.Y, config.Movement.StompBounce)
	}
	if !bottom.State.Knockback {
		t.Error("bottom avatar not knocked back")
	}
	if bottom.Stars != 3-config.Collision.StarsNormal {
		t.Errorf("stars = %d", bottom.Stars)
	}
	if !hasEvent(res, 1, movement.EventBounce) {
		t.Error("missing bounce event")
	}
}

func TestFellOutRespawns(t *testing.T) {
	m := New(level.New("pit", 20, 10), config.DefaultRules())
	a := m.Join(1)

	died := false
	for i := 0; i < 300 && !died; i++ {
		res := m.Step(dt)
		died = hasEvent(res, 1, movement.EventDeath)
	}
	if !died || !a.State.Dead {
		t.Fatal("avatar never died after falling out")
	}

	respawned := false
	ticks := int(config.Timers.Respawn/dt) + 2
	for i := 0; i < ticks && !respawned; i++ {
		res := m.Step(dt)
		respawned = hasEvent(res, 1, movement.EventRespawn)
	}
	if !respawned || a.State.Dead {
		t.Fatal("avatar did not respawn")
	}
	if a.Warp == 0 {
		t.Error("respawn did not bump the warp counter")
	}
}

func TestQuestionBlockGrantsItem(t *testing.T) {
	m := flatMatch(30, 10)
	m.Level.SetTile(tiles.Coord{X: 10, Y: 3}, tiles.Tile{Behavior: tiles.Bump, Item: "mushroom"})
	a := m.Join(1)
	place(a, 10.5, 1)
	m.SetInput(1, movement.InputSample{Jump: true})

	var change *TileChange
	for i := 0; i < 60 && change == nil; i++ {
		res := m.Step(dt)
		if len(res.Tiles) > 0 {
			change = &res.Tiles[0]
		}
	}
	if change == nil {
		t.Fatal("block never reacted")
	}
	if change.ID != 1 || change.Reaction.New != tiles.Used {
		t.Errorf("change = %+v", change)
	}
	if a.State.Powerup != netconfig.Mushroom {
		t.Errorf("powerup = %v, want mushroom", a.State.Powerup)
	}
}

func TestPredictedMatchNeverWritesTiles(t *testing.T) {
	l := level.New("flat", 30, 10)
	for x := 0; x < 30; x++ {
		l.SetTile(tiles.Coord{X: x, Y: 0}, tiles.Tile{Behavior: tiles.Solid})
	}
	block := tiles.Coord{X: 10, Y: 3}
	l.SetTile(block, tiles.Tile{Behavior: tiles.Bump, Item: "mushroom"})
	m := NewPredicted(l, config.DefaultRules())
	a := m.Join(1)
	place(a, 10.5, 1)
	m.SetInput(1, movement.InputSample{Jump: true})

	bumped := false
	for i := 0; i < 60; i++ {
		res := m.Step(dt)
		if len(res.Tiles) > 0 {
			t.Fatalf("predicted tick reported tile changes %+v", res.Tiles)
		}
		bumped = bumped || hasEvent(res, 1, movement.EventHeadBump)
	}
	if !bumped {
		t.Fatal("avatar never reached the block")
	}
	if tile, _ := l.GetTileBehavior(block); tile.Behavior != tiles.Bump {
		t.Errorf("block = %v, want untouched", tile.Behavior)
	}
	if a.State.Powerup != netconfig.Small {
		t.Errorf("powerup = %v, want small until the server confirms", a.State.Powerup)
	}

	m.Grant(1, "mushroom")
	if a.State.Powerup != netconfig.Mushroom {
		t.Errorf("powerup = %v after Grant, want mushroom", a.State.Powerup)
	}
	if m.Grant(99, "mushroom") != nil {
		t.Error("Grant to an unknown avatar produced events")
	}
}

func TestPipeWarp(t *testing.T) {
	m := flatMatch(30, 10)
	m.Level.Warps = []level.Warp{
		{ID: 1, Target: 2, Position: gamemath.Vector{X: 5, Y: 1}, Direction: gamemath.Vector{Y: -1}},
		{ID: 2, Target: 1, Position: gamemath.Vector{X: 18, Y: 1}, Direction: gamemath.Vector{Y: -1}},
	}
	a := m.Join(1)
	place(a, 5, 1)
	m.SetInput(1, movement.InputSample{Crouch: true})

	res := m.Step(dt)
	if !hasEvent(res, 1, movement.EventTransitStart) {
		t.Fatal("pressing down on a pipe did not start a transit")
	}
	m.SetInput(1, movement.InputSample{})

	for i := 0; i < 120 && a.State.Transit.Active; i++ {
		m.Step(dt)
	}
	if a.State.Transit.Active {
		t.Fatal("transit never ended")
	}
	if a.State.Position.X != 18 || a.State.Position.Y <= 1 {
		t.Errorf("exit position = %+v, want above the target pipe", a.State.Position)
	}
	if a.Warp != 1 {
		t.Errorf("warp counter = %d, want 1", a.Warp)
	}
}

func TestApplyUpdate(t *testing.T) {
	m := flatMatch(30, 10)
	a := m.Join(1)
	place(a, 5, 1)

	in := movement.InputSample{Joystick: gamemath.Vector{X: 1}, Run: true}
	delta, err := netsync.FromState(&a.State, in)
	if err != nil {
		t.Fatal(err)
	}
	snap := netsync.Snapshot{
		Position: gamemath.Vector{X: 8, Y: 1},
		Velocity: gamemath.Vector{X: 4},
		Powerup:  netconfig.Small,
	}
	now := 10 * time.Second
	var res TickResult
	rep, err := m.ApplyUpdate(Update{ID: 1, Delta: delta, Snapshot: snap, SentAt: now - 50*time.Millisecond}, now, &res)
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if rep.FullTicks != 3 || rep.Degraded {
		t.Errorf("report = %+v, want 3 full ticks", rep)
	}
	if a.State.Position.X <= 8 {
		t.Errorf("x = %v, replay did not move the avatar forward", a.State.Position.X)
	}
	if a.Input != delta.Input() {
		t.Errorf("input = %+v, want the delta's input", a.Input)
	}

	_, err = m.ApplyUpdate(Update{ID: 9, Delta: delta, Snapshot: snap}, now, &res)
	if !errors.Is(err, ErrUnknownAvatar) {
		t.Errorf("err = %v, want ErrUnknownAvatar", err)
	}
}
