package systems

import (
	"fmt"

	"github.com/automoto/jumpsync/components"
	"github.com/automoto/jumpsync/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 4
	hudLineHeight = 16
)

func hud(e *ecs.ECS) *components.HUDData {
	entry, ok := components.HUD.First(e.World)
	if !ok {
		return nil
	}
	return components.HUD.Get(entry)
}

// LogEvent appends a line to the on-screen event log.
func LogEvent(e *ecs.ECS, format string, args ...any) {
	h := hud(e)
	if h == nil {
		return
	}
	h.Events = append(h.Events, fmt.Sprintf(format, args...))
	if n := len(h.Events) - config.Client.EventLog; n > 0 {
		h.Events = h.Events[n:]
	}
}

// SetStatus replaces the status lines shown at the top of the screen.
func SetStatus(e *ecs.ECS, lines ...string) {
	if h := hud(e); h != nil {
		h.Status = append(h.Status[:0], lines...)
	}
}

// UpdateDebugToggle flips hitbox outlines with F1.
func UpdateDebugToggle(e *ecs.ECS) {
	if h := hud(e); h != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		h.ShowHitboxes = !h.ShowHitboxes
	}
}

// DrawHUD prints the status lines top-left and the event log bottom-left.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	h := hud(e)
	if h == nil {
		return
	}
	y := hudMargin
	for _, line := range h.Status {
		ebitenutil.DebugPrintAt(screen, line, hudMargin, y)
		y += hudLineHeight
	}

	y = screen.Bounds().Dy() - hudMargin - len(h.Events)*hudLineHeight
	for _, line := range h.Events {
		ebitenutil.DebugPrintAt(screen, line, hudMargin, y)
		y += hudLineHeight
	}
}
