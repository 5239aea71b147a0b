package tiles

import "github.com/automoto/jumpsync/shared/netconfig"

// Reaction records an accepted tile change for presentation and network
// broadcast.
type Reaction struct {
	Tick      uint64
	Coord     Coord
	From      Direction
	Old       Behavior
	New       Behavior
	Item      string
	Particles bool
}

// Ledger enforces one accepted reaction per tile per tick. The first
// reaction wins; later ones in the same tick resolve to None.
type Ledger struct {
	tick    uint64
	claimed map[Coord]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{claimed: make(map[Coord]struct{})}
}

// BeginTick starts a new tick and forgets earlier claims.
func (l *Ledger) BeginTick(tick uint64) {
	l.tick = tick
	clear(l.claimed)
}

// Claim reserves c for this tick. It returns false if already claimed.
func (l *Ledger) Claim(c Coord) bool {
	if _, ok := l.claimed[c]; ok {
		return false
	}
	l.claimed[c] = struct{}{}
	return true
}

// Resolver applies the tile reaction rules against a Grid.
type Resolver struct {
	grid      Grid
	ledger    *Ledger
	dryRun    bool
	reactions []Reaction
}

// NewResolver creates a resolver that writes reactions into grid.
func NewResolver(grid Grid) *Resolver {
	return &Resolver{grid: grid, ledger: NewLedger()}
}

// DryRun returns a resolver sharing the grid that computes results without
// writing reactions. Resimulation uses it so replays never mutate the grid.
func (r *Resolver) DryRun() *Resolver {
	return &Resolver{grid: r.grid, ledger: NewLedger(), dryRun: true}
}

// IsDryRun reports whether the resolver only previews reactions.
func (r *Resolver) IsDryRun() bool {
	return r.dryRun
}

// Tile reads the grid without interacting.
func (r *Resolver) Tile(c Coord) (Tile, bool) {
	if r == nil || r.grid == nil {
		return Tile{}, false
	}
	return r.grid.GetTileBehavior(c)
}

// BeginTick resets the per-tick ledger.
func (r *Resolver) BeginTick(tick uint64) {
	r.ledger.BeginTick(tick)
}

// Interact resolves a single approach against the tile at c.
func (r *Resolver) Interact(c Coord, from Direction, actor Actor) Result {
	if r == nil || r.grid == nil {
		return None
	}
	tile, ok := r.grid.GetTileBehavior(c)
	if !ok {
		return None
	}

	switch tile.Behavior {
	case Breakable:
		if !canBreak(from, actor) {
			if !r.claim(c) {
				return None
			}
			r.record(c, from, tile, tile.Behavior, false)
			return ReactedBlocking
		}
		if !r.claim(c) {
			return None
		}
		r.apply(c, Empty)
		r.record(c, from, tile, Empty, true)
		return Reacted

	case Bump:
		if !r.claim(c) {
			return None
		}
		r.apply(c, Used)
		r.record(c, from, tile, Used, false)
		return ReactedBlocking
	}

	return None
}

// Resolve runs every request and returns the results in request order.
func (r *Resolver) Resolve(reqs []Request, actor Actor) []Result {
	if len(reqs) == 0 {
		return nil
	}
	results := make([]Result, len(reqs))
	for i, req := range reqs {
		a := actor
		if req.Purpose == PurposeMegaBreak {
			a.Powerup = netconfig.MegaMushroom
		}
		results[i] = r.Interact(req.Coord, req.From, a)
	}
	return results
}

// DrainReactions returns and clears the reactions accepted since the last drain.
func (r *Resolver) DrainReactions() []Reaction {
	out := r.reactions
	r.reactions = nil
	return out
}

func (r *Resolver) claim(c Coord) bool {
	if r.dryRun {
		return true
	}
	return r.ledger.Claim(c)
}

func (r *Resolver) apply(c Coord, b Behavior) {
	if r.dryRun {
		return
	}
	r.grid.ApplyTileReaction(c, b)
}

func (r *Resolver) record(c Coord, from Direction, old Tile, next Behavior, particles bool) {
	if r.dryRun {
		return
	}
	item := ""
	if old.Behavior == Bump {
		item = old.Item
	}
	r.reactions = append(r.reactions, Reaction{
		Tick:      r.ledger.tick,
		Coord:     c,
		From:      from,
		Old:       old.Behavior,
		New:       next,
		Item:      item,
		Particles: particles,
	})
}

// canBreak decides whether an actor destroys a brick rather than bumping it.
func canBreak(from Direction, actor Actor) bool {
	switch {
	case actor.Powerup == netconfig.MegaMushroom:
		return true
	case actor.Powerup == netconfig.MiniMushroom:
		return false
	case actor.Drill && from == FromAbove:
		return true
	case actor.InShell && (from == FromLeft || from == FromRight):
		return true
	case !actor.Powerup.IsLarge():
		return false
	case from == FromBelow:
		return true
	case from == FromAbove:
		return actor.Groundpound
	}
	return false
}
