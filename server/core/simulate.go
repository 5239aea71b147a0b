package core

import (
	"log"
	"maps"
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netcomponents"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
)

// stepsPerTick returns how many fixed simulation steps fit in one server
// tick. Sub-stepping keeps the movement tuned for 60 Hz correct at the
// server's lower tick rate.
func stepsPerTick(tickRate int) int {
	n := int(math.Round(1 / (float64(tickRate) * config.Net.FixedDeltaTime)))
	return max(n, 1)
}

// simulate runs one server tick of the match and publishes the result.
func (s *Server) simulate() {
	res := s.pending
	s.pending = match.TickResult{}

	for range stepsPerTick(s.loop.tickRate) {
		r := s.match.Step(config.Net.FixedDeltaTime)
		res.Tick = r.Tick
		res.Events = append(res.Events, r.Events...)
		res.Collisions = append(res.Collisions, r.Collisions...)
		res.Tiles = append(res.Tiles, r.Tiles...)
	}

	s.publish(res)

	for _, sess := range s.joinedSessions() {
		if a, ok := s.match.Avatar(sess.id); ok {
			s.writeAvatar(sess, a)
		}
	}
	if s.world.Valid(s.gameState) {
		gs := netcomponents.NetGameState.Get(s.world.Entry(s.gameState))
		gs.Tick = s.match.Tick()
		gs.Players = s.match.Len()
		gs.MatchState = netcomponents.MatchStateWaiting
		if gs.Players > 1 {
			gs.MatchState = netcomponents.MatchStatePlaying
		}
	}
	s.publishStatus()
}

// publish broadcasts tile changes, contact outcomes, movement events and
// star counts produced since the last tick.
func (s *Server) publish(res match.TickResult) {
	for _, tc := range res.Tiles {
		r := tc.Reaction
		tileReactions.WithLabelValues(r.New.String()).Inc()
		s.broadcast(messages.TileEvent{
			ActorID:   uint(tc.ID),
			X:         r.Coord.X,
			Y:         r.Coord.Y,
			From:      uint8(r.From),
			Old:       uint8(r.Old),
			New:       uint8(r.New),
			Item:      r.Item,
			Particles: r.Particles,
			Tick:      res.Tick,
		}, nil)
	}

	for _, c := range res.Collisions {
		collisions.WithLabelValues(c.Outcome.Kind.String()).Inc()
		s.broadcast(messages.NewCollisionEvent(c, res.Tick), nil)
	}

	for _, e := range res.Events {
		if e.Event.Kind == movement.EventDeath {
			log.Printf("[server] avatar %d died", e.ID)
		}
		s.broadcast(messages.MovementEvent{
			NetworkID: uint(e.ID),
			Kind:      uint8(e.Event.Kind),
			Powerup:   uint8(e.Event.Powerup),
		}, nil)
	}

	stars := make(map[uint32]int, s.match.Len())
	for _, a := range s.match.Avatars() {
		stars[a.ID] = a.Stars
	}
	if !maps.Equal(stars, s.lastStars) {
		s.lastStars = stars
		out := make(map[uint]int, len(stars))
		for id, n := range stars {
			out[uint(id)] = n
		}
		s.broadcast(messages.StarsUpdateEvent{Stars: out}, nil)
	}
}

// writeAvatar copies an avatar into its synced components.
func (s *Server) writeAvatar(sess *Session, a *match.Avatar) {
	if !s.world.Valid(sess.entity) {
		return
	}
	entry := s.world.Entry(sess.entity)

	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{
		X:    a.State.Position.X,
		Y:    a.State.Position.Y,
		Warp: a.Warp,
	})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{
		VX: a.State.Velocity.X,
		VY: a.State.Velocity.Y,
	})

	var flags uint16
	if d, err := netsync.FromState(&a.State, a.Input); err == nil {
		flags = d.Flags
	}
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		StateID:      a.State.StateID(),
		FacingRight:  a.State.FacingRight,
		Powerup:      a.State.Powerup,
		Flags:        flags,
		Growth:       a.State.Growth,
		Stars:        a.Stars,
		LastSequence: sess.lastSeq,
	})
}

func vec(x, y float64) gamemath.Vector {
	return gamemath.Vector{X: x, Y: y}
}

// powerup maps a wire value to a power-up; unknown values are passed through
// so the resimulator rejects them.
func powerup(v uint8) netconfig.PowerupState {
	return netconfig.PowerupState(v)
}
