package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/automoto/jumpsync/assets"
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/input"
	"github.com/automoto/jumpsync/network"
	"github.com/automoto/jumpsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi/ecs"
)

// NetworkedScene joins a server and plays the level it runs.
type NetworkedScene struct {
	opts      Options
	netClient *network.Client
	ecs       *ecs.ECS
	sim       *systems.NetSim
	err       error
}

// NewNetworkedScene dials address right away; the level is built once the
// server accepts the join.
func NewNetworkedScene(opts Options, address, version, playerName string) *NetworkedScene {
	client := network.NewClient()
	client.Connect(address, version, playerName)
	return &NetworkedScene{opts: opts, netClient: client}
}

func (ns *NetworkedScene) Update() {
	switch ns.netClient.State() {
	case network.StateError:
		if ns.err == nil {
			ns.err = ns.netClient.LastError()
			log.Printf("[networked] %v", ns.err)
		}
		return
	case network.StateDisconnected:
		if ns.err == nil {
			ns.err = fmt.Errorf("disconnected")
		}
		return
	case network.StateJoinedGame:
		if ns.ecs == nil {
			ns.configure()
		}
	}

	if ns.ecs != nil {
		ns.ecs.Update()
	}
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	switch {
	case ns.err != nil:
		ebitenutil.DebugPrint(screen, ns.err.Error())
	case ns.ecs == nil:
		ebitenutil.DebugPrint(screen, "connecting: "+ns.netClient.State().String())
	default:
		ns.ecs.Draw(screen)
	}
}

// Close saves the recording and leaves the server.
func (ns *NetworkedScene) Close() error {
	var err error
	if ns.sim != nil {
		err = saveRecording(ns.opts, ns.sim.Recorder)
	}
	ns.netClient.Disconnect()
	return err
}

func (ns *NetworkedScene) configure() {
	lvl, err := assets.LoadLevel(ns.netClient.Level())
	if err != nil {
		ns.err = fmt.Errorf("server level: %w", err)
		ns.netClient.Disconnect()
		return
	}

	sim := systems.NewNetSim(ns.netClient, lvl, input.NewDevice())
	if a, ok := sim.Match.Avatar(sim.LocalID); ok {
		sim.Recorder = recorderFor(ns.opts, lvl.Name, a.State.Position, config.Net.FixedDeltaTime)
	}
	ns.sim = sim
	ns.ecs = newWorld(lvl, sim.Update)
}
