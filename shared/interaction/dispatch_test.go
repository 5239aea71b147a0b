package interaction

import (
	"testing"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
)

func avatars() map[uint32]*movement.State {
	star := movement.NewState(gamemath.Vector{X: 5, Y: 1}, netconfig.Small)
	star.OnGround = true
	star.PrevVelocity.X = 7
	star.Velocity.X = 5
	movement.CollectStar(&star)

	victim := movement.NewState(gamemath.Vector{X: 5.3, Y: 1}, netconfig.Mushroom)
	victim.OnGround = true

	return map[uint32]*movement.State{1: &star, 2: &victim}
}

func lookupIn(m map[uint32]*movement.State) func(uint32) *movement.State {
	return func(id uint32) *movement.State { return m[id] }
}

func TestDispatcherAppliesOutcomes(t *testing.T) {
	m := avatars()
	d := NewDispatcher(config.DefaultRules())

	bodies := []Body{BodyOf(1, m[1]), BodyOf(2, m[2])}
	if n := d.Detect(bodies); n != 1 {
		t.Fatalf("Detect = %d, want 1", n)
	}
	if d.Detect(bodies) != 0 {
		t.Error("pair queued twice in one tick")
	}
	if d.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", d.Pending())
	}

	m[1].Velocity.X = 0
	applied := d.Flush(lookupIn(m))
	if len(applied) != 2 {
		t.Fatalf("applied %d outcomes, want 2", len(applied))
	}
	if m[1].Velocity.X != 7 {
		t.Errorf("invincible avatar velocity = %v, want the start-of-tick 7", m[1].Velocity.X)
	}
	if m[2].Powerup != netconfig.Small {
		t.Errorf("victim powerup = %v, want small", m[2].Powerup)
	}
	if applied[1].Target != 2 || applied[1].Other != 1 || applied[1].Outcome.Kind != Powerdown {
		t.Errorf("applied[1] = %+v", applied[1])
	}
	if d.Pending() != 0 {
		t.Error("queue not cleared by Flush")
	}
}

func TestDispatcherSkipsSeparatedAndMissing(t *testing.T) {
	m := avatars()
	m[2].Position.X = 20
	d := NewDispatcher(config.DefaultRules())
	if n := d.Detect([]Body{BodyOf(1, m[1]), BodyOf(2, m[2])}); n != 0 {
		t.Errorf("Detect = %d for separated avatars", n)
	}

	a, b := body(1), body(3)
	d.Post(a, b, Resolution{Self: Outcome{Kind: Bounce}, Other: Outcome{Kind: Bounce}})
	applied := d.Flush(lookupIn(m))
	if len(applied) != 1 || applied[0].Target != 1 {
		t.Errorf("applied = %+v, want only avatar 1", applied)
	}
	if d.Post(a, a, Resolution{}) {
		t.Error("self contact accepted")
	}
}

func TestDispatcherStarsRule(t *testing.T) {
	rules := config.DefaultRules()
	rules.StarsOnKnockback = false
	d := NewDispatcher(rules)

	s := movement.NewState(gamemath.Vector{X: 5, Y: 1}, netconfig.Small)
	m := map[uint32]*movement.State{1: &s}
	d.Post(body(1), body(2), Resolution{Self: Outcome{Kind: Knockback, Stars: 3}})

	applied := d.Flush(lookupIn(m))
	if len(applied) != 1 || applied[0].Outcome.Stars != 0 {
		t.Fatalf("applied = %+v, want zero stars", applied)
	}
	if !s.Knockback {
		t.Error("knockback not applied")
	}
}
