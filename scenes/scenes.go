// Package scenes holds the debug client's two modes: a local sandbox and a
// networked session. Both draw the same ECS of avatars, tiles and HUD.
package scenes

import (
	"log"

	"github.com/automoto/jumpsync/archetypes"
	"github.com/automoto/jumpsync/components"
	"github.com/automoto/jumpsync/replay"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/systems"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Options configure a scene.
type Options struct {
	Level  string
	Record string // Save the local avatar's input under this name on exit
	Replay string // Play this recording as a ghost (local mode only)
	Store  *replay.Store
}

// newWorld builds the ECS shared by every scene: the level, a camera, the
// HUD and the update and draw systems around sim.
func newWorld(lvl *level.Level, sim func(*ecs.ECS)) *ecs.ECS {
	e := ecs.NewECS(donburi.NewWorld())

	levelEntry := archetypes.Level.Spawn(e)
	components.Level.SetValue(levelEntry, components.LevelData{Level: lvl})
	archetypes.Camera.Spawn(e)
	hudEntry := archetypes.HUD.Spawn(e)
	components.HUD.SetValue(hudEntry, components.HUDData{ShowHitboxes: true})

	e.AddSystem(systems.UpdateDebugToggle)
	e.AddSystem(sim)
	e.AddSystem(systems.UpdateCamera)

	e.AddRenderer(archetypes.LayerWorld, systems.DrawLevel)
	e.AddRenderer(archetypes.LayerWorld, systems.DrawAvatars)
	e.AddRenderer(archetypes.LayerHUD, systems.DrawHUD)
	return e
}

// recorderFor starts a recording when opts asks for one.
func recorderFor(opts Options, lvl string, start gamemath.Vector, step float64) *replay.Recorder {
	if opts.Record == "" || opts.Store == nil {
		return nil
	}
	log.Printf("[scene] recording as %q", opts.Record)
	return replay.NewRecorder(lvl, start, step)
}

// saveRecording writes rec under opts.Record.
func saveRecording(opts Options, rec *replay.Recorder) error {
	if rec == nil || rec.Len() == 0 {
		return nil
	}
	return opts.Store.Save(opts.Record, rec.Recording())
}
