package core

import (
	"log"
	"time"

	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/automoto/jumpsync/shared/netcomponents"
	"github.com/automoto/jumpsync/shared/netsync"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/yohamta/donburi"
	"golang.org/x/time/rate"
)

// Session is one connected client. It is not a donburi component: it exists
// only on the server and is never synced.
type Session struct {
	client  *router.NetworkClient
	name    string
	limiter *rate.Limiter

	// Set by the game loop once the avatar exists.
	joined  bool
	entity  donburi.Entity
	id      uint32
	lastSeq uint32
}

// command is a router event deferred to the game loop goroutine.
type command interface {
	apply(s *Server, now time.Duration)
}

type joinCommand struct {
	session *Session
}

func (c joinCommand) apply(s *Server, now time.Duration) {
	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
	)

	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetPlayerState,
	)
	if err != nil {
		log.Printf("[server] failed to setup network sync for player: %v", err)
		s.world.Remove(entity)
		return
	}

	nid := esync.GetNetworkId(s.world.Entry(entity))
	if nid == nil {
		log.Printf("[server] player entity has no network id")
		s.world.Remove(entity)
		return
	}

	sess := c.session
	sess.entity = entity
	sess.id = uint32(*nid)
	avatar := s.match.Join(sess.id)
	s.writeAvatar(sess, avatar)

	s.mu.Lock()
	_, connected := s.sessions[sess.client]
	sess.joined = connected
	s.mu.Unlock()
	if !connected {
		s.match.Leave(sess.id)
		s.world.Remove(entity)
		return
	}

	playersConnected.Set(float64(s.match.Len()))
	log.Printf("[server] %q joined as avatar %d", sess.name, sess.id)

	if err := sess.client.SendMessage(messages.JoinAccepted{
		NetworkID:  *nid,
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
		Level:      s.match.Level.Name,
		ServerTime: int64(now),
		X:          avatar.State.Position.X,
		Y:          avatar.State.Position.Y,
		Rules:      s.cfg.Rules,
	}); err != nil {
		log.Printf("[server] send join accepted: %v", err)
	}
	s.broadcast(messages.SpawnEvent{
		NetworkID: uint(sess.id),
		X:         avatar.State.Position.X,
		Y:         avatar.State.Position.Y,
		Powerup:   uint8(avatar.State.Powerup),
	}, sess)
}

type leaveCommand struct {
	session *Session
}

func (c leaveCommand) apply(s *Server, _ time.Duration) {
	sess := c.session
	if !sess.joined {
		return
	}
	sess.joined = false
	s.match.Leave(sess.id)
	delete(s.lastStars, sess.id)
	if s.world.Valid(sess.entity) {
		s.world.Remove(sess.entity)
	}
	playersConnected.Set(float64(s.match.Len()))
	s.broadcast(messages.DespawnEvent{NetworkID: uint(sess.id)}, nil)
	log.Printf("[server] avatar %d removed", sess.id)
}

type deltaCommand struct {
	session *Session
	msg     messages.PlayerDelta
	delta   netsync.NetworkDelta
}

func (c deltaCommand) apply(s *Server, now time.Duration) {
	sess, msg := c.session, c.msg
	if !sess.joined {
		return
	}
	if msg.Sequence <= sess.lastSeq && sess.lastSeq != 0 {
		deltasRejected.WithLabelValues("stale").Inc()
		return
	}

	rep, err := s.match.ApplyUpdate(match.Update{
		ID:    sess.id,
		Delta: c.delta,
		Snapshot: netsync.Snapshot{
			Position: vec(msg.X, msg.Y),
			Velocity: vec(msg.VX, msg.VY),
			Powerup:  powerup(msg.Powerup),
		},
		SentAt: time.Duration(msg.SentAt),
	}, now, &s.pending)
	if err != nil {
		deltasRejected.WithLabelValues("invalid").Inc()
		log.Printf("[server] delta from avatar %d: %v", sess.id, err)
		return
	}
	sess.lastSeq = msg.Sequence
	resimTicks.Observe(float64(rep.FullTicks))
	if rep.Degraded {
		resimDegraded.Inc()
		log.Printf("[server] avatar %d lagging %v, replay clamped to %d ticks", sess.id, rep.Lag, rep.FullTicks)
	}

	s.broadcast(messages.RemoteDelta{
		NetworkID: uint(sess.id),
		Delta:     msg.Delta,
		X:         msg.X,
		Y:         msg.Y,
		VX:        msg.VX,
		VY:        msg.VY,
		Powerup:   msg.Powerup,
		SentAt:    msg.SentAt,
	}, sess)
}
