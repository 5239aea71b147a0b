package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/automoto/jumpsync/assets"
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/input"
	"github.com/automoto/jumpsync/replay"
	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi/ecs"
)

const (
	localAvatarID = 1
	ghostAvatarID = 2
)

// LocalScene plays a level offline.
type LocalScene struct {
	opts Options
	ecs  *ecs.ECS
	sim  *systems.LocalSim
	once sync.Once
	err  error
}

func NewLocalScene(opts Options) *LocalScene {
	return &LocalScene{opts: opts}
}

func (ls *LocalScene) Update() {
	ls.once.Do(ls.configure)
	if ls.ecs != nil {
		ls.ecs.Update()
	}
}

func (ls *LocalScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if ls.err != nil {
		ebitenutil.DebugPrint(screen, ls.err.Error())
		return
	}
	if ls.ecs != nil {
		ls.ecs.Draw(screen)
	}
}

// Close saves the recording, if any.
func (ls *LocalScene) Close() error {
	if ls.sim == nil {
		return nil
	}
	return saveRecording(ls.opts, ls.sim.Recorder)
}

func (ls *LocalScene) configure() {
	lvl, err := assets.LoadLevel(ls.opts.Level)
	if err != nil {
		ls.err = err
		return
	}

	m := match.New(lvl, config.DefaultRules())
	a := m.Join(localAvatarID)
	sim := &systems.LocalSim{
		Match:    m,
		LocalID:  localAvatarID,
		Input:    input.NewDevice(),
		Recorder: recorderFor(ls.opts, lvl.Name, a.State.Position, config.Net.FixedDeltaTime),
	}

	if ls.opts.Replay != "" && ls.opts.Store != nil {
		if err := ls.addGhost(sim); err != nil {
			log.Printf("[scene] no ghost: %v", err)
		}
	}

	ls.sim = sim
	ls.ecs = newWorld(lvl, sim.Update)
}

// addGhost loads the replay into a match on a fresh copy of its level.
func (ls *LocalScene) addGhost(sim *systems.LocalSim) error {
	rec, err := ls.opts.Store.Load(ls.opts.Replay)
	if err != nil {
		return err
	}
	if rec.Level != sim.Match.Level.Name {
		return fmt.Errorf("replay %s is for level %s", ls.opts.Replay, rec.Level)
	}
	lvl, err := assets.LoadLevel(rec.Level)
	if err != nil {
		return err
	}
	gm := match.New(lvl, config.DefaultRules())
	rec.Reset(gm.Join(ghostAvatarID))

	sim.GhostMatch = gm
	sim.GhostID = ghostAvatarID
	sim.Ghost = replay.NewPlayer(rec)
	log.Printf("[scene] ghost %s: %.1fs", ls.opts.Replay, rec.Duration())
	return nil
}
