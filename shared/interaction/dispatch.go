package interaction

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
)

// Applied reports one outcome after it was applied to its avatar.
type Applied struct {
	Target  uint32
	Other   uint32
	Outcome Outcome
	Events  []movement.Event
}

type pairKey struct{ lo, hi uint32 }

func keyOf(a, b uint32) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

type pending struct {
	target   uint32
	other    uint32
	outcome  Outcome
	velocity gamemath.Vector
}

// Dispatcher queues contact outcomes for a tick and applies each one to its
// own avatar, so no avatar ever writes another avatar's state.
type Dispatcher struct {
	Rules config.Ruleset

	queue []pending
	seen  map[pairKey]struct{}
}

// NewDispatcher creates a dispatcher for the given rules.
func NewDispatcher(rules config.Ruleset) *Dispatcher {
	return &Dispatcher{Rules: rules, seen: make(map[pairKey]struct{})}
}

// Post queues a resolved contact. A pair is only accepted once per flush.
func (d *Dispatcher) Post(self, other Body, r Resolution) bool {
	k := keyOf(self.ID, other.ID)
	if _, dup := d.seen[k]; dup || self.ID == other.ID {
		return false
	}
	d.seen[k] = struct{}{}
	d.queue = append(d.queue,
		pending{target: self.ID, other: other.ID, outcome: r.Self, velocity: self.PrevVelocity},
		pending{target: other.ID, other: self.ID, outcome: r.Other, velocity: other.PrevVelocity},
	)
	return true
}

// Detect resolves every overlapping pair of bodies and queues the results.
// It returns the number of contacts queued.
func (d *Dispatcher) Detect(bodies []Body) int {
	n := 0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if !a.Box.Overlaps(b.Box) {
				continue
			}
			if d.Post(a, b, ResolveWith(d.Rules, a, b, Normal(a, b))) {
				n++
			}
		}
	}
	return n
}

// Pending returns the number of queued outcomes.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Flush applies every queued outcome in posting order and clears the queue.
// lookup returns nil for avatars that have left; their outcomes are dropped.
func (d *Dispatcher) Flush(lookup func(id uint32) *movement.State) []Applied {
	var applied []Applied
	for _, p := range d.queue {
		s := lookup(p.target)
		if s == nil {
			continue
		}
		o := p.outcome
		if o.Kind == Knockback && !d.Rules.StarsOnKnockback {
			o.Stars = 0
		}
		events := Apply(s, o, p.velocity)
		applied = append(applied, Applied{Target: p.target, Other: p.other, Outcome: o, Events: events})
	}
	d.queue = d.queue[:0]
	clear(d.seen)
	return applied
}

// Apply performs one outcome on s. prev is the velocity s had at the start
// of the tick.
func Apply(s *movement.State, o Outcome, prev gamemath.Vector) []movement.Event {
	switch o.Kind {
	case Bounce:
		return movement.Bounce(s)
	case Knockback:
		return movement.ApplyKnockback(s, o.FromRight, o.Weak)
	case Powerdown:
		return movement.Powerdown(s)
	case MutualBounce:
		return movement.Repel(s, o.FromRight)
	}
	if o.KeepVelocity {
		s.Velocity = prev
	}
	return nil
}
