// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine, donburi, or resolv: pure data only.
//
// All positions are converted to world units (tiles) with +Y up: row 0 is the
// bottom row of the map.
package leveldata

import "errors"

// ErrNoLevels is returned when a levels directory holds no .tmx files.
var ErrNoLevels = errors.New("no levels found")

// CollisionData holds all collision-relevant data parsed from a TMX level file.
type CollisionData struct {
	Name        string
	Tiles       []TileData
	SpawnPoints []SpawnPoint
	Warps       []Warp
	MapWidth    int // In tiles
	MapHeight   int
}

// TileData is one non-empty tile of the collision layer.
type TileData struct {
	X, Y      int
	Behavior  string // "", "brick", "question", "used", "pipe", "spinner", "ice", "slope"
	SlopeType string // Set for slopes, e.g. "45_up_right"
	Item      string // Contents of a question block
}

// SpawnPoint represents a player spawn location (feet position).
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// Warp is a pipe or door entrance linked to another warp by ID.
type Warp struct {
	ID        int
	Target    int
	X, Y      float64 // Feet position at the entrance
	Direction string  // "down", "up", "left", "right"; travel direction when entering
	Door      bool
}
