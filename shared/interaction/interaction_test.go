package interaction

import (
	"testing"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
)

var (
	up    = gamemath.Vector{Y: 1}
	down  = gamemath.Vector{Y: -1}
	left  = gamemath.Vector{X: -1}
	right = gamemath.Vector{X: 1}
)

func body(id uint32) Body {
	return Body{ID: id, Box: gamemath.Rect{W: 0.75, H: 0.84}}
}

func TestResolveRules(t *testing.T) {
	fast := func(b Body) Body { b.Velocity.X = config.Collision.BumpSpeedThreshold + 1; return b }

	tests := []struct {
		name      string
		self      func(Body) Body
		other     func(Body) Body
		normal    gamemath.Vector
		wantSelf  Outcome
		wantOther Outcome
	}{
		{
			name:      "invincible beats vulnerable",
			self:      func(b Body) Body { b.Invincible = true; return b },
			normal:    right,
			wantSelf:  Outcome{Kind: NoEffect, KeepVelocity: true},
			wantOther: Outcome{Kind: Powerdown, FromRight: true},
		},
		{
			name:      "both invincible knock each other",
			self:      func(b Body) Body { b.Invincible = true; return b },
			other:     func(b Body) Body { b.Invincible = true; return b },
			normal:    left,
			wantSelf:  Outcome{Kind: Knockback, FromRight: true, Weak: true},
			wantOther: Outcome{Kind: Knockback, FromRight: false, Weak: true},
		},
		{
			name:      "mega crushes normal",
			self:      func(b Body) Body { b.Mega = true; return b },
			normal:    down,
			wantSelf:  Outcome{Kind: NoEffect},
			wantOther: Outcome{Kind: Powerdown},
		},
		{
			name:      "mega stomps mega",
			self:      func(b Body) Body { b.Mega = true; return b },
			other:     func(b Body) Body { b.Mega = true; return b },
			normal:    up,
			wantSelf:  Outcome{Kind: Bounce},
			wantOther: Outcome{Kind: Powerdown},
		},
		{
			name:      "mega side contact bounces both",
			self:      func(b Body) Body { b.Mega = true; return b },
			other:     func(b Body) Body { b.Mega = true; return b },
			normal:    right,
			wantSelf:  Outcome{Kind: MutualBounce},
			wantOther: Outcome{Kind: MutualBounce, FromRight: true},
		},
		{
			name:      "shell hits walker",
			self:      func(b Body) Body { b.InShell = true; return b },
			normal:    left,
			wantSelf:  Outcome{Kind: NoEffect},
			wantOther: Outcome{Kind: Powerdown},
		},
		{
			name:      "stomp on shell bounces it",
			self:      func(b Body) Body { b.InShell = true; return b },
			normal:    down,
			wantSelf:  Outcome{Kind: Knockback, FromRight: true, Weak: true},
			wantOther: Outcome{Kind: Bounce},
		},
		{
			name:      "soft stomp",
			normal:    up,
			wantSelf:  Outcome{Kind: Bounce},
			wantOther: Outcome{Kind: Knockback, Stars: config.Collision.StarsNormal, Weak: true},
		},
		{
			name:      "groundpound stomp",
			self:      func(b Body) Body { b.Groundpound = true; return b },
			normal:    up,
			wantSelf:  Outcome{Kind: Bounce},
			wantOther: Outcome{Kind: Knockback, Stars: config.Collision.StarsHard},
		},
		{
			name:      "mini squash",
			other:     func(b Body) Body { b.Mini = true; return b },
			normal:    up,
			wantSelf:  Outcome{Kind: Bounce},
			wantOther: Outcome{Kind: Knockback, Stars: config.Collision.StarsMini},
		},
		{
			name:      "running bump",
			self:      fast,
			other:     fast,
			normal:    left,
			wantSelf:  Outcome{Kind: Knockback, Stars: config.Collision.StarsNormal, FromRight: true, Weak: true},
			wantOther: Outcome{Kind: Knockback, Stars: config.Collision.StarsNormal, Weak: true},
		},
		{
			name:   "slow side contact",
			self:   fast,
			normal: left,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self, other := body(1), body(2)
			if tt.self != nil {
				self = tt.self(self)
			}
			if tt.other != nil {
				other = tt.other(other)
			}
			got := Resolve(self, other, tt.normal)
			if got.Self != tt.wantSelf {
				t.Errorf("Self = %+v, want %+v", got.Self, tt.wantSelf)
			}
			if got.Other != tt.wantOther {
				t.Errorf("Other = %+v, want %+v", got.Other, tt.wantOther)
			}
		})
	}
}

func TestLowerGroundpounderWins(t *testing.T) {
	lower := body(1)
	lower.Groundpound = true
	upper := body(2)
	upper.Box.X = 0.1
	upper.Box.Y = 0.8

	n := Normal(upper, lower)
	if n.Y <= config.Collision.StompDot {
		t.Fatalf("normal %+v is not from above", n)
	}
	got := Resolve(upper, lower, n)
	if got.Other.Kind != Bounce {
		t.Errorf("lower outcome = %v, want bounce", got.Other.Kind)
	}
	if got.Self.Kind != Knockback || got.Self.Stars != 1 {
		t.Errorf("upper outcome = %+v, want knockback(1)", got.Self)
	}
}

func TestResolveSymmetric(t *testing.T) {
	normals := []gamemath.Vector{up, down, left, right, {X: 0.6, Y: 0.8}, {X: -0.8, Y: 0.6}, {}}
	flags := []func(Body) Body{
		func(b Body) Body { return b },
		func(b Body) Body { b.Invincible = true; return b },
		func(b Body) Body { b.Mega = true; return b },
		func(b Body) Body { b.InShell = true; return b },
		func(b Body) Body { b.Groundpound = true; return b },
		func(b Body) Body { b.Mini = true; return b },
		func(b Body) Body { b.Velocity.X = 20; return b },
	}

	for _, fa := range flags {
		for _, fb := range flags {
			for _, n := range normals {
				a, b := fa(body(1)), fb(body(2))
				ab := Resolve(a, b, n)
				ba := Resolve(b, a, n.Neg())
				if ab.Self != ba.Other || ab.Other != ba.Self {
					t.Fatalf("asymmetric for %+v vs %+v, n=%+v:\n%+v\n%+v", a, b, n, ab, ba)
				}
				if ab.Self.Kind == Knockback && ab.Other.Kind == Knockback && ab.Self.FromRight == ab.Other.FromRight {
					t.Fatalf("knockbacks push the same way for n=%+v: %+v", n, ab)
				}
			}
		}
	}
}

func TestFriendlyBumpsRule(t *testing.T) {
	a, b := body(1), body(2)
	a.Velocity.X, b.Velocity.X = 20, -20
	rules := config.DefaultRules()
	rules.FriendlyBumps = false
	if got := ResolveWith(rules, a, b, left); got.Self.Kind != NoEffect || got.Other.Kind != NoEffect {
		t.Errorf("bump with friendly bumps off: %+v", got)
	}
}

func TestKindString(t *testing.T) {
	if MutualBounce.String() != "mutual_bounce" || Kind(99).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
