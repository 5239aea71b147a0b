// Package interaction resolves avatar-versus-avatar contact into outcomes.
// Resolve never touches avatar state; a Dispatcher applies the outcomes to
// each avatar through the movement package's external events.
package interaction

import (
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
)

// Kind is what happens to one side of a contact.
type Kind uint8

const (
	NoEffect Kind = iota
	Bounce
	Knockback
	Powerdown
	MutualBounce
)

var kindNames = [...]string{
	NoEffect:     "no_effect",
	Bounce:       "bounce",
	Knockback:    "knockback",
	Powerdown:    "powerdown",
	MutualBounce: "mutual_bounce",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Outcome is one side's result of a contact.
type Outcome struct {
	Kind  Kind
	Stars int // Stars dropped; only knockbacks drop stars
	// FromRight is true when the other avatar is on the right, so any push
	// goes left.
	FromRight bool
	Weak      bool
	// KeepVelocity restores the velocity the avatar had at the start of the
	// tick, so an invincible avatar is not slowed by what it ran through.
	KeepVelocity bool
}

// Resolution holds both sides of one contact.
type Resolution struct {
	Self  Outcome
	Other Outcome
}

// Body is the contact-relevant snapshot of an avatar.
type Body struct {
	ID       uint32
	Box      gamemath.Rect
	Velocity gamemath.Vector
	// PrevVelocity is the velocity at the start of the tick, restored by
	// KeepVelocity outcomes.
	PrevVelocity gamemath.Vector
	Invincible   bool
	Mega         bool // Growing or grown
	InShell      bool
	Groundpound  bool // Groundpounding or drilling
	Mini         bool
}

// BodyOf snapshots an avatar state.
func BodyOf(id uint32, s *movement.State) Body {
	return Body{
		ID:           id,
		Box:          s.Hitbox(),
		Velocity:     s.Velocity,
		PrevVelocity: s.PrevVelocity,
		Invincible:   s.Invincible(),
		Mega:         s.IsMega() || s.MegaGrowing(),
		InShell:      s.InShell,
		Groundpound:  s.Groundpound || s.Drill,
		Mini:         s.Powerup == netconfig.MiniMushroom,
	}
}

// Normal is the unit vector from other's centre toward self's centre.
func Normal(self, other Body) gamemath.Vector {
	return self.Box.Center().Sub(other.Box.Center()).Normalized()
}

// Resolve decides both outcomes of a contact between self and other. normal
// points from other toward self. Swapping the bodies and negating the normal
// swaps the outcomes.
func Resolve(self, other Body, normal gamemath.Vector) Resolution {
	return ResolveWith(config.DefaultRules(), self, other, normal)
}

// ResolveWith is Resolve under an explicit ruleset.
func ResolveWith(rules config.Ruleset, self, other Body, normal gamemath.Vector) Resolution {
	return Resolution{
		Self:  outcome(rules, self, other, normal),
		Other: outcome(rules, other, self, normal.Neg()),
	}
}

// outcome is a's side of the contact. Rules are checked in priority order
// and each is written so that outcome(b, a, -n) is its mirror.
func outcome(rules config.Ruleset, a, b Body, n gamemath.Vector) Outcome {
	c := &config.Collision
	fromRight := n.X < 0 || (n.X == 0 && a.ID < b.ID)
	aAbove := n.Y > c.StompDot
	bAbove := -n.Y > c.StompDot

	knock := func(stars int, weak bool) Outcome {
		return Outcome{Kind: Knockback, Stars: stars, FromRight: fromRight, Weak: weak}
	}

	switch {
	case a.Invincible && !b.Invincible:
		return Outcome{Kind: NoEffect, KeepVelocity: true}
	case !a.Invincible && b.Invincible:
		return Outcome{Kind: Powerdown, FromRight: fromRight}
	case a.Invincible && b.Invincible:
		return knock(0, true)
	}

	switch {
	case a.Mega && !b.Mega:
		return Outcome{Kind: NoEffect}
	case !a.Mega && b.Mega:
		return Outcome{Kind: Powerdown, FromRight: fromRight}
	case a.Mega && b.Mega:
		switch {
		case aAbove:
			return Outcome{Kind: Bounce}
		case bAbove:
			return Outcome{Kind: Powerdown, FromRight: fromRight}
		}
		return Outcome{Kind: MutualBounce, FromRight: fromRight}
	}

	switch {
	case a.InShell && b.InShell:
		return knock(0, true)
	case a.InShell:
		if bAbove {
			return knock(0, true)
		}
		return Outcome{Kind: NoEffect}
	case b.InShell:
		if aAbove {
			return Outcome{Kind: Bounce}
		}
		return Outcome{Kind: Powerdown, FromRight: fromRight}
	}

	switch {
	case aAbove:
		if b.Groundpound && !a.Groundpound {
			return knock(c.StarsNormal, false)
		}
		return Outcome{Kind: Bounce}
	case bAbove:
		switch {
		case b.Groundpound:
			return knock(c.StarsHard, false)
		case a.Groundpound:
			return Outcome{Kind: Bounce}
		case a.Mini:
			return knock(c.StarsMini, false)
		}
		return knock(c.StarsNormal, true)
	}

	if rules.FriendlyBumps &&
		math.Abs(a.Velocity.X) > c.BumpSpeedThreshold &&
		math.Abs(b.Velocity.X) > c.BumpSpeedThreshold {
		return knock(c.StarsNormal, true)
	}
	return Outcome{Kind: NoEffect}
}
