package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/jumpsync/components"
	cfg "github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
	"github.com/automoto/jumpsync/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var tileColors = map[tiles.Behavior]color.RGBA{
	tiles.Solid:     cfg.Grey,
	tiles.Breakable: cfg.Brown,
	tiles.Bump:      cfg.Yellow,
	tiles.Used:      cfg.Orange,
	tiles.Pipe:      cfg.BrightGreen,
	tiles.Spinner:   cfg.Magenta,
	tiles.Ice:       cfg.LightBlue,
	tiles.Slope:     cfg.Grey,
}

var powerupColors = map[netconfig.PowerupState]color.RGBA{
	netconfig.Small:             cfg.Red,
	netconfig.Mushroom:          cfg.LightGreen,
	netconfig.FireFlower:        cfg.Orange,
	netconfig.IceFlower:         cfg.LightBlue,
	netconfig.MiniMushroom:      cfg.Purple,
	netconfig.MegaMushroom:      cfg.Magenta,
	netconfig.BlueShell:         cfg.Blue,
	netconfig.PropellerMushroom: cfg.White,
}

// view is the camera offset applied to level pixels.
type view struct {
	offX, offY float64
}

func cameraView(e *ecs.ECS, screen *ebiten.Image) (view, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view{}, false // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	return view{
		offX: float64(width)/2 - camera.Position.X,
		offY: float64(height)/2 - camera.Position.Y,
	}, true
}

func currentLevelHeight(e *ecs.ECS) (int, bool) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok || components.Level.Get(levelEntry).Level == nil {
		return 0, false
	}
	return components.Level.Get(levelEntry).Level.Height, true
}

// DrawLevel renders every tile as a filled square colored by behavior.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(color.Black)
	v, ok := cameraView(e, screen)
	if !ok {
		return
	}
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	lvl := components.Level.Get(levelEntry).Level
	if lvl == nil {
		return
	}

	s := cfg.Client.TileScale
	lvl.EachTile(func(c tiles.Coord, t tiles.Tile) {
		r := rectToPixels(gamemath.Rect{X: float64(c.X), Y: float64(c.Y), W: 1, H: 1}, lvl.Height)
		x, y := float32(r.X+v.offX), float32(r.Y+v.offY)
		if x+float32(s) < 0 || y+float32(s) < 0 || x > float32(screen.Bounds().Dx()) || y > float32(screen.Bounds().Dy()) {
			return
		}
		vector.FillRect(screen, x, y, float32(s)-1, float32(s)-1, tileColors[t.Behavior], false)
	})

	for _, w := range lvl.Warps {
		px, py := worldToPixels(w.Position, lvl.Height)
		vector.FillRect(screen, float32(px+v.offX)-3, float32(py+v.offY)-3, 6, 6, cfg.Cyan, false)
	}
}

// DrawAvatars renders every avatar's hitbox, its facing and its state.
func DrawAvatars(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := cameraView(e, screen)
	if !ok {
		return
	}
	height, ok := currentLevelHeight(e)
	if !ok {
		return
	}
	showHitboxes := true
	if hud, ok := components.HUD.First(e.World); ok {
		showHitboxes = components.HUD.Get(hud).ShowHitboxes
	}

	components.Avatar.Each(e.World, func(entry *donburi.Entry) {
		avatar := components.Avatar.Get(entry)
		s := avatar.State
		if s == nil || s.Dead {
			return
		}
		r := rectToPixels(s.Hitbox(), height)
		x, y := float32(r.X+v.offX), float32(r.Y+v.offY)
		w, h := float32(r.W), float32(r.H)

		c := powerupColors[s.Powerup]
		switch {
		case entry.HasComponent(tags.GhostAvatar):
			c = cfg.Ghost
		case s.Invincible():
			c = cfg.Yellow
		}
		vector.FillRect(screen, x, y, w, h, c, false)
		if showHitboxes {
			outline(screen, x, y, w, h, cfg.White)
		}

		// Facing marker
		fx := x + w/2 + float32(s.Facing())*w/3
		vector.FillRect(screen, fx-2, y+h/3-2, 4, 4, color.Black, false)

		label := fmt.Sprintf("%d %s", avatar.ID, s.StateID())
		if entry.HasComponent(tags.LocalAvatar) {
			label = "* " + label
		}
		ebitenutil.DebugPrintAt(screen, label, int(x), int(y)-16)
	})
}

func outline(screen *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
}

// avatarLine summarizes one avatar for the HUD.
func avatarLine(id uint32, s *movement.State, stars int) string {
	return fmt.Sprintf("#%d %-12s %-10s x=%6.2f y=%6.2f vx=%6.2f vy=%6.2f stars=%d",
		id, s.StateID(), s.Powerup, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y, stars)
}
