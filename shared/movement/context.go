package movement

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/tiles"
)

// Contact is the result of sweeping a hitbox through the level.
type Contact struct {
	Box        gamemath.Rect
	OnGround   bool
	HitLeft    bool
	HitRight   bool
	HitRoof    bool
	FloorAngle float64

	// Tiles touched on each side, used for tile interactions.
	Floor []tiles.Coord
	Roof  []tiles.Coord
	Left  []tiles.Coord
	Right []tiles.Coord
}

// Collider is the level geometry the integrator moves hitboxes through.
type Collider interface {
	// Move sweeps box by delta and reports the resolved box and contacts.
	Move(box gamemath.Rect, delta gamemath.Vector) Contact
	// Overlaps reports whether box intersects any solid tile.
	Overlaps(box gamemath.Rect) bool
	// SurfaceAngle casts dist below (down) or above the box for a sloped
	// surface and returns its angle in degrees.
	SurfaceAngle(box gamemath.Rect, down bool, dist float64) (float64, bool)
}

// Bounds are the playable level limits in world units.
type Bounds struct {
	MinX, MaxX float64
	MinY       float64 // Falling below this is a fall-out
	MaxY       float64 // Top of the level; avatars may rise above it
}

// SimulationContext carries everything a tick needs beyond the avatar's own
// state. It replaces any ambient "current match" lookup.
type SimulationContext struct {
	Collider Collider
	Tiles    *tiles.Resolver // nil disables tile interactions
	Rules    config.Ruleset
	Bounds   Bounds
}

// NewContext builds a context with the default ruleset.
func NewContext(collider Collider, resolver *tiles.Resolver, bounds Bounds) *SimulationContext {
	return &SimulationContext{
		Collider: collider,
		Tiles:    resolver,
		Rules:    config.DefaultRules(),
		Bounds:   bounds,
	}
}

// DryRun returns a copy whose tile resolver never writes to the grid.
func (ctx *SimulationContext) DryRun() *SimulationContext {
	c := *ctx
	if ctx.Tiles != nil {
		c.Tiles = ctx.Tiles.DryRun()
	}
	return &c
}

func (ctx *SimulationContext) resolve(reqs []tiles.Request, actor tiles.Actor) []tiles.Result {
	if ctx.Tiles == nil || len(reqs) == 0 {
		return make([]tiles.Result, len(reqs))
	}
	return ctx.Tiles.Resolve(reqs, actor)
}
