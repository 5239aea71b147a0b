package systems

import (
	"fmt"

	"github.com/automoto/jumpsync/archetypes"
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/input"
	"github.com/automoto/jumpsync/replay"
	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/tags"
	"github.com/yohamta/donburi/ecs"
)

// LocalSim runs a match on this machine. The local avatar reads a device;
// an optional ghost replays a recording in a match of its own so it never
// touches the local avatar or its tiles.
type LocalSim struct {
	Match    *match.Match
	LocalID  uint32
	Input    input.Provider
	Recorder *replay.Recorder

	GhostMatch *match.Match
	GhostID    uint32
	Ghost      *replay.Player
}

func (s *LocalSim) Update(e *ecs.ECS) {
	in := s.Input.Sample()
	if s.Recorder != nil {
		in = s.Recorder.Record(in)
	}
	s.Match.SetInput(s.LocalID, in)
	res := s.Match.Step(config.Net.FixedDeltaTime)
	reportTick(e, s.LocalID, res)

	var local []avatarView
	var status []string
	for _, a := range s.Match.Avatars() {
		local = append(local, avatarView{ID: a.ID, State: &a.State, Stars: a.Stars})
		status = append(status, avatarLine(a.ID, &a.State, a.Stars))
	}
	syncAvatars(e, tags.LocalAvatar, archetypes.LocalAvatar, local)

	var ghost []avatarView
	if s.Ghost != nil && s.GhostMatch != nil {
		if !s.Ghost.Done() {
			s.GhostMatch.SetInput(s.GhostID, s.Ghost.Sample())
			s.GhostMatch.Step(config.Net.FixedDeltaTime)
		}
		if a, ok := s.GhostMatch.Avatar(s.GhostID); ok {
			ghost = append(ghost, avatarView{ID: a.ID, State: &a.State})
			status = append(status, "ghost "+avatarLine(a.ID, &a.State, a.Stars))
		}
	}
	syncAvatars(e, tags.GhostAvatar, archetypes.GhostAvatar, ghost)

	header := fmt.Sprintf("offline  tick %d", s.Match.Tick())
	if s.Recorder != nil {
		header += fmt.Sprintf("  recording %d frames", s.Recorder.Len())
	}
	SetStatus(e, append([]string{header}, status...)...)
}

// reportTick logs what the local avatar did this tick and shakes the camera
// on heavy landings.
func reportTick(e *ecs.ECS, localID uint32, res match.TickResult) {
	for _, ev := range res.Events {
		if ev.ID != localID {
			continue
		}
		switch ev.Event.Kind {
		case movement.EventLanded, movement.EventJump, movement.EventWallSlide:
			// too frequent to log
		case movement.EventGroundpoundLand:
			TriggerScreenShake(e, config.Camera.ShakeIntensity, config.Camera.ShakeFrames)
			LogEvent(e, "%d: %s", ev.ID, ev.Event.Kind)
		default:
			LogEvent(e, "%d: %s", ev.ID, ev.Event.Kind)
		}
	}
	for _, tc := range res.Tiles {
		r := tc.Reaction
		LogEvent(e, "%d: tile (%d,%d) %s -> %s %s", tc.ID, r.Coord.X, r.Coord.Y, r.Old, r.New, r.Item)
	}
	for _, c := range res.Collisions {
		LogEvent(e, "%d: %s from %d", c.Target, c.Outcome.Kind, c.Other)
	}
}
