package messages

import "github.com/automoto/jumpsync/shared/interaction"

// CollisionEvent is broadcast when the server applies an avatar contact
// outcome. One event is sent per affected avatar.
type CollisionEvent struct {
	TargetID     uint  // NetworkId of the avatar the outcome applies to
	OtherID      uint  // NetworkId of the avatar it touched
	Kind         uint8 // interaction.Kind enum value
	Stars        int   // Stars dropped by a knockback
	FromRight    bool
	Weak         bool
	KeepVelocity bool
	Tick         uint64
}

// NewCollisionEvent describes an applied contact outcome.
func NewCollisionEvent(c interaction.Applied, tick uint64) CollisionEvent {
	return CollisionEvent{
		TargetID:     uint(c.Target),
		OtherID:      uint(c.Other),
		Kind:         uint8(c.Outcome.Kind),
		Stars:        c.Outcome.Stars,
		FromRight:    c.Outcome.FromRight,
		Weak:         c.Outcome.Weak,
		KeepVelocity: c.Outcome.KeepVelocity,
		Tick:         tick,
	}
}

// Outcome rebuilds the outcome the server applied.
func (e CollisionEvent) Outcome() interaction.Outcome {
	return interaction.Outcome{
		Kind:         interaction.Kind(e.Kind),
		Stars:        e.Stars,
		FromRight:    e.FromRight,
		Weak:         e.Weak,
		KeepVelocity: e.KeepVelocity,
	}
}

// TileEvent is broadcast when the authoritative tile grid changes.
type TileEvent struct {
	ActorID   uint // NetworkId of the avatar that caused the reaction
	X, Y      int
	From      uint8 // tiles.Direction the actor came from
	Old, New  uint8 // tiles.Behavior enum values
	Item      string
	Particles bool
	Tick      uint64
}

// MovementEvent relays a presentation event of one avatar (jump, powerup,
// death...) so remote clients can play effects without simulating it.
type MovementEvent struct {
	NetworkID uint
	Kind      uint8 // movement.EventKind enum value
	Powerup   uint8
}

// SpawnEvent is broadcast when an avatar enters the level
type SpawnEvent struct {
	NetworkID uint
	X, Y      float64
	Powerup   uint8
}

// DespawnEvent is broadcast when an avatar is removed
type DespawnEvent struct {
	NetworkID uint
}

// StarsUpdateEvent is broadcast when star counts change
type StarsUpdateEvent struct {
	Stars map[uint]int // NetworkId -> stars
}
