// Package match runs one level's worth of avatars: it steps every avatar
// through the shared movement core, triggers warps, resolves avatar contacts
// through the interaction dispatcher and collects the tile reactions each
// avatar caused. The server runs one authoritative Match; the debug client
// runs its own for local play.
package match

import (
	"errors"
	"math"
	"slices"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/interaction"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
	"github.com/automoto/jumpsync/shared/tiles"
)

// ErrUnknownAvatar is returned for updates addressed to an avatar that is
// not in the match.
var ErrUnknownAvatar = errors.New("match: unknown avatar")

// Avatar is one player's simulated body.
type Avatar struct {
	ID    uint32
	State movement.State
	Input movement.InputSample
	Stars int
	// Warp increments whenever the avatar teleports so that observers snap
	// instead of interpolating.
	Warp uint8

	respawnIn float64
}

// AvatarEvent is a movement event tagged with the avatar that produced it.
type AvatarEvent struct {
	ID    uint32
	Event movement.Event
}

// TileChange is a tile reaction tagged with the avatar that caused it.
type TileChange struct {
	ID       uint32
	Reaction tiles.Reaction
}

// TickResult is everything one Match tick produced.
type TickResult struct {
	Tick       uint64
	Events     []AvatarEvent
	Collisions []interaction.Applied
	Tiles      []TileChange
}

// Match owns a level, its tile resolver and the avatars playing in it. It is
// not safe for concurrent use.
type Match struct {
	Level *level.Level

	ctx        *movement.SimulationContext
	dispatcher *interaction.Dispatcher
	resim      *netsync.Resimulator
	avatars    map[uint32]*Avatar
	order      []uint32
	tick       uint64
	spawns     int
}

// New creates a match on lvl with the given rules.
func New(lvl *level.Level, rules config.Ruleset) *Match {
	ctx := movement.NewContext(lvl, tiles.NewResolver(lvl), lvl.Bounds())
	ctx.Rules = rules
	return &Match{
		Level:      lvl,
		ctx:        ctx,
		dispatcher: interaction.NewDispatcher(rules),
		avatars:    make(map[uint32]*Avatar),
	}
}

// NewPredicted creates a match that never writes lvl's tiles. Clients use
// it to predict their own avatar; the server's tile events are the only
// writer of their grid.
func NewPredicted(lvl *level.Level, rules config.Ruleset) *Match {
	m := New(lvl, rules)
	m.ctx = m.ctx.DryRun()
	return m
}

// Context returns the match's simulation context.
func (m *Match) Context() *movement.SimulationContext {
	return m.ctx
}

// Tick returns the number of the last completed tick.
func (m *Match) Tick() uint64 {
	return m.tick
}

// Join spawns an avatar. Joining twice returns the existing avatar.
func (m *Match) Join(id uint32) *Avatar {
	if a, ok := m.avatars[id]; ok {
		return a
	}
	a := &Avatar{ID: id, State: movement.NewState(m.Level.Spawn(m.spawns), netconfig.Small)}
	m.spawns++
	m.avatars[id] = a
	i, _ := slices.BinarySearch(m.order, id)
	m.order = slices.Insert(m.order, i, id)
	return a
}

// Leave removes an avatar. It reports whether the avatar existed.
func (m *Match) Leave(id uint32) bool {
	if _, ok := m.avatars[id]; !ok {
		return false
	}
	delete(m.avatars, id)
	if i, found := slices.BinarySearch(m.order, id); found {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true
}

// Avatar looks up an avatar by ID.
func (m *Match) Avatar(id uint32) (*Avatar, bool) {
	a, ok := m.avatars[id]
	return a, ok
}

// Avatars returns all avatars in ID order.
func (m *Match) Avatars() []*Avatar {
	out := make([]*Avatar, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.avatars[id])
	}
	return out
}

// Len returns the number of avatars.
func (m *Match) Len() int {
	return len(m.avatars)
}

// SetInput stores the input the avatar is stepped with until the next call.
func (m *Match) SetInput(id uint32, in movement.InputSample) {
	if a, ok := m.avatars[id]; ok {
		a.Input = in
	}
}

// Step advances every avatar by dt. Avatars are stepped in ID order, so the
// lowest ID wins a tile both avatars hit in the same tick.
func (m *Match) Step(dt float64) TickResult {
	m.tick++
	m.ctx.Tiles.BeginTick(m.tick)
	res := TickResult{Tick: m.tick}

	for _, id := range m.order {
		a := m.avatars[id]
		if a.State.Dead {
			m.waitRespawn(a, dt, &res)
			continue
		}

		before := a.State.Position
		step := movement.Step(m.ctx, &a.State, a.Input, dt)
		m.collect(a, step.Events, &res)
		if math.Abs(a.State.Position.X-before.X) > float64(m.Level.Width)/2 {
			a.Warp++
		}

		m.collect(a, m.enterWarp(a), &res)
		for _, r := range m.ctx.Tiles.DrainReactions() {
			res.Tiles = append(res.Tiles, TileChange{ID: id, Reaction: r})
			m.collect(a, m.grant(a, r.Item), &res)
		}
	}

	bodies := make([]interaction.Body, 0, len(m.order))
	for _, id := range m.order {
		a := m.avatars[id]
		if a.State.Dead || a.State.Transit.Active {
			continue
		}
		bodies = append(bodies, interaction.BodyOf(id, &a.State))
	}
	m.dispatcher.Detect(bodies)
	res.Collisions = m.dispatcher.Flush(func(id uint32) *movement.State {
		if a, ok := m.avatars[id]; ok {
			return &a.State
		}
		return nil
	})
	for _, c := range res.Collisions {
		a := m.avatars[c.Target]
		if c.Outcome.Kind == interaction.Knockback {
			a.Stars = max(a.Stars-c.Outcome.Stars, 0)
		}
		for _, e := range c.Events {
			res.Events = append(res.Events, AvatarEvent{ID: c.Target, Event: e})
		}
	}

	return res
}

// collect records events and reacts to the ones the match owns: falling out
// kills, warps and deaths start the respawn countdown.
func (m *Match) collect(a *Avatar, events []movement.Event, res *TickResult) {
	for _, e := range events {
		res.Events = append(res.Events, AvatarEvent{ID: a.ID, Event: e})
		switch e.Kind {
		case movement.EventFellOut:
			m.collect(a, movement.Kill(&a.State), res)
		case movement.EventTransitWarp:
			a.Warp++
		case movement.EventDeath:
			a.respawnIn = config.Timers.Respawn
		}
	}
}

func (m *Match) waitRespawn(a *Avatar, dt float64, res *TickResult) {
	a.respawnIn -= dt
	if a.respawnIn > 0 {
		return
	}
	movement.Respawn(&a.State, m.Level.Spawn(m.spawns))
	m.spawns++
	a.Warp++
	a.Input = movement.InputSample{}
	res.Events = append(res.Events, AvatarEvent{ID: a.ID, Event: movement.Event{Kind: movement.EventRespawn}})
}

// enterWarp starts a pipe or door transit when the avatar stands in an
// entrance and pushes toward it. Doors open with up.
func (m *Match) enterWarp(a *Avatar) []movement.Event {
	s := &a.State
	if s.Transit.Active || s.Dead || s.Frozen {
		return nil
	}
	w, ok := m.Level.WarpAt(s.Hitbox())
	if !ok {
		return nil
	}
	target, ok := m.Level.WarpByID(w.Target)
	if !ok {
		return nil
	}

	var pushing bool
	switch {
	case w.Door:
		pushing = s.OnGround && a.Input.Up()
	case w.Direction.Y < 0:
		pushing = s.OnGround && a.Input.Down()
	case w.Direction.Y > 0:
		pushing = a.Input.Up()
	default:
		pushing = s.OnGround && a.Input.Horizontal() == w.Direction.X
	}
	if !pushing {
		return nil
	}
	return movement.StartTransit(s, target.Position, w.Direction, target.Direction.Neg(), w.Door)
}

// Grant hands item to avatar id, as a question block does when the avatar
// bumps it. Unknown avatars and items are ignored.
func (m *Match) Grant(id uint32, item string) []movement.Event {
	a, ok := m.avatars[id]
	if !ok {
		return nil
	}
	return m.grant(a, item)
}

// grant hands a question block's item straight to the avatar that bumped it.
func (m *Match) grant(a *Avatar, item string) []movement.Event {
	switch item {
	case "":
		return nil
	case "coin":
		a.Stars++
		return nil
	case "star":
		return movement.CollectStar(&a.State)
	}
	if p, ok := netconfig.ParsePowerup(item); ok {
		return movement.CollectPowerup(&a.State, p)
	}
	return nil
}
