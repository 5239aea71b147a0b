// Command jumpsync is the debug client: it plays a level locally or joins a
// server, drawing hitboxes and tiles instead of sprites.
package main

import (
	"errors"
	"flag"
	"image"
	"log"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/replay"
	"github.com/automoto/jumpsync/scenes"
	"github.com/automoto/jumpsync/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
	Close() error
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.Client.Width, config.Client.Height)
	return config.Client.Width, config.Client.Height
}

func main() {
	server := flag.String("server", "", "Server address, e.g. ws://localhost:7373 (empty = play locally)")
	name := flag.String("name", "player", "Player name sent to the server")
	version := flag.String("version", "", "Client version sent to the server")
	levelName := flag.String("level", "", "Level to play locally (default: first embedded level)")
	record := flag.String("record", "", "Save this session's input under the given name")
	replayName := flag.String("replay", "", "Race against a saved recording (local play only)")
	flag.Parse()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	opts := scenes.Options{Level: *levelName, Record: *record, Replay: *replayName}
	if opts.Record != "" || opts.Replay != "" {
		store, err := replay.OpenStore(config.Client.AppName)
		if err != nil {
			log.Printf("Warning: replays disabled: %v", err)
		}
		opts.Store = store
	}

	g := &Game{}
	if *server == "" {
		g.scene = scenes.NewLocalScene(opts)
	} else {
		g.scene = scenes.NewNetworkedScene(opts, *server, *version, *name)
	}

	ebiten.SetWindowTitle("jumpsync")
	ebiten.SetWindowSize(config.Client.Width, config.Client.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	err := ebiten.RunGame(g)
	if cerr := g.scene.Close(); cerr != nil {
		log.Printf("Warning: %v", cerr)
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
