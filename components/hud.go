package components

import "github.com/yohamta/donburi"

// HUDData holds the debug overlay's text.
type HUDData struct {
	Status       []string // Rewritten every frame
	Events       []string // Most recent last
	ShowHitboxes bool
}

var HUD = donburi.NewComponentType[HUDData]()
