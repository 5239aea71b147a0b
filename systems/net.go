package systems

import (
	"fmt"
	"log"

	"github.com/automoto/jumpsync/archetypes"
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/input"
	"github.com/automoto/jumpsync/network"
	"github.com/automoto/jumpsync/replay"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/interaction"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
	"github.com/automoto/jumpsync/tags"
	"github.com/yohamta/donburi/ecs"
)

// NetSim predicts the local avatar in a one-avatar match, resimulates
// remote avatars from their deltas and applies the server's tile and
// contact decisions.
type NetSim struct {
	Client   *network.Client
	Match    *match.Match
	Remotes  *network.Remotes
	Sender   *network.Sender
	Input    input.Provider
	Recorder *replay.Recorder
	LocalID  uint32

	pingIn float64
	stars  map[uint32]int
	drift  float64
	acked  uint32
}

// NewNetSim joins the local avatar at the spawn the server picked.
func NewNetSim(client *network.Client, lvl *level.Level, in input.Provider) *NetSim {
	id := uint32(client.NetworkID())
	m := match.NewPredicted(lvl, client.Rules())
	a := m.Join(id)
	movement.Respawn(&a.State, client.Spawn())
	return &NetSim{
		Client:  client,
		Match:   m,
		Remotes: network.NewRemotes(m.Context()),
		Sender:  network.NewSender(),
		Input:   in,
		LocalID: id,
		stars:   make(map[uint32]int),
	}
}

func (s *NetSim) Update(e *ecs.ECS) {
	dt := config.Net.FixedDeltaTime
	now := s.Client.Clock().ServerNow()

	s.applyServer(e)
	for _, msg := range s.Client.DrainRemoteDeltas() {
		if msg.NetworkID == uint(s.LocalID) {
			continue
		}
		if _, err := s.Remotes.Apply(msg, now); err != nil {
			log.Printf("[client] %v", err)
		}
	}

	in := s.Input.Sample()
	if s.Recorder != nil {
		in = s.Recorder.Record(in)
	}
	s.Match.SetInput(s.LocalID, in)
	res := s.Match.Step(dt)
	reportTick(e, s.LocalID, res)
	for _, ev := range res.Events {
		if ev.Event.Kind == movement.EventRespawn {
			s.Sender.Reset()
		}
	}
	s.Remotes.Step(dt)

	local, ok := s.Match.Avatar(s.LocalID)
	if !ok {
		return
	}
	msg, send, err := s.Sender.Next(&local.State, local.Input, now)
	if err != nil {
		log.Printf("[client] %v", err)
	}
	if send {
		if err := s.Client.SendMessage(msg); err != nil {
			log.Printf("[client] send delta: %v", err)
		}
	}

	s.pingIn -= dt
	if s.pingIn <= 0 {
		s.pingIn = config.Client.PingEvery
		s.Client.Ping()
	}

	s.sync(e, local)
}

// applyServer drains everything the server decided since the last frame.
func (s *NetSim) applyServer(e *ecs.ECS) {
	for _, evt := range s.Client.DrainSpawnEvents() {
		if evt.NetworkID == uint(s.LocalID) {
			continue
		}
		s.Remotes.Spawn(uint32(evt.NetworkID), gamemath.Vector{X: evt.X, Y: evt.Y}, netconfig.PowerupState(evt.Powerup))
		LogEvent(e, "%d joined", evt.NetworkID)
	}
	for _, evt := range s.Client.DrainDespawnEvents() {
		s.Remotes.Remove(uint32(evt.NetworkID))
		delete(s.stars, uint32(evt.NetworkID))
		LogEvent(e, "%d left", evt.NetworkID)
	}

	for _, evt := range s.Client.DrainTileEvents() {
		// Prediction never writes tiles; the server's events are the grid.
		s.Match.Level.ApplyTileReaction(tiles.Coord{X: evt.X, Y: evt.Y}, tiles.Behavior(evt.New))
		if evt.ActorID == uint(s.LocalID) && evt.Item != "" {
			for _, ev := range s.Match.Grant(s.LocalID, evt.Item) {
				LogEvent(e, "%d: %s", s.LocalID, ev.Kind)
			}
		}
	}

	for _, evt := range s.Client.DrainCollisionEvents() {
		if evt.TargetID != uint(s.LocalID) {
			continue
		}
		a, ok := s.Match.Avatar(s.LocalID)
		if !ok {
			continue
		}
		o := evt.Outcome()
		interaction.Apply(&a.State, o, a.State.PrevVelocity)
		LogEvent(e, "%d: %s from %d", evt.TargetID, o.Kind, evt.OtherID)
	}

	for _, evt := range s.Client.DrainMovementEvents() {
		if evt.NetworkID != uint(s.LocalID) {
			s.Remotes.ApplyEvent(evt)
		}
	}

	if stars := s.Client.LatestStars(); stars != nil {
		clear(s.stars)
		for id, n := range stars {
			s.stars[uint32(id)] = n
		}
	}

	if snap := s.Client.LatestSnapshot(); snap != nil {
		for _, ent := range network.DecodeSnapshot(*snap) {
			if uint32(ent.ID) != s.LocalID || ent.Player == nil || ent.Position == nil {
				continue
			}
			if ent.Player.LastSequence > s.acked {
				s.acked = ent.Player.LastSequence
				s.drift = s.Sender.Drift(s.acked, gamemath.Vector{X: ent.Position.X, Y: ent.Position.Y})
			}
		}
	}
}

func (s *NetSim) sync(e *ecs.ECS, local *match.Avatar) {
	syncAvatars(e, tags.LocalAvatar, archetypes.LocalAvatar, []avatarView{{
		ID:    local.ID,
		State: &local.State,
		Stars: s.stars[local.ID],
		Drift: s.drift,
	}})

	status := []string{
		fmt.Sprintf("online %s  rtt %v  acked %d  unacked %d  drift %.3f",
			s.Client.State(), s.Client.Clock().RTT(), s.acked, len(s.Sender.Unacknowledged(s.acked)), s.drift),
		avatarLine(local.ID, &local.State, s.stars[local.ID]),
	}

	remotes := make([]avatarView, 0, s.Remotes.Len())
	for _, r := range s.Remotes.All() {
		remotes = append(remotes, avatarView{ID: r.ID, State: &r.State, Stars: s.stars[r.ID]})
		line := avatarLine(r.ID, &r.State, s.stars[r.ID])
		if r.Report.Degraded {
			line += "  (lagging)"
		}
		status = append(status, line)
	}
	syncAvatars(e, tags.RemoteAvatar, archetypes.RemoteAvatar, remotes)
	SetStatus(e, status...)
}
