// Package tiles resolves avatar-vs-tile reactions (breaking, bumping) against
// the shared level grid. The grid itself is a collaborator: this package
// only reads behaviors and writes reactions through the Grid interface.
package tiles

import (
	"math"

	"github.com/automoto/jumpsync/shared/netconfig"
)

// Coord is a tile-grid coordinate. Row 0 is the bottom of the level.
type Coord struct {
	X, Y int
}

// CoordAt returns the tile containing the world point (x, y).
func CoordAt(x, y float64) Coord {
	return Coord{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Behavior is the interactable behavior tag of a tile.
type Behavior uint8

const (
	Empty Behavior = iota
	Solid
	Breakable
	Bump
	Used
	Pipe
	Spinner
	Ice
	Slope
	behaviorCount
)

var behaviorNames = [behaviorCount]string{
	Empty:     "empty",
	Solid:     "solid",
	Breakable: "brick",
	Bump:      "question",
	Used:      "used",
	Pipe:      "pipe",
	Spinner:   "spinner",
	Ice:       "ice",
	Slope:     "slope",
}

func (b Behavior) String() string {
	if b < behaviorCount {
		return behaviorNames[b]
	}
	return "unknown"
}

// ParseBehavior maps a level-file behavior name to a Behavior. Unknown and
// empty names are plain solid ground.
func ParseBehavior(name string) Behavior {
	for b, n := range behaviorNames {
		if n == name {
			return Behavior(b)
		}
	}
	return Solid
}

// IsSolid reports whether the behavior blocks movement.
func (b Behavior) IsSolid() bool {
	return b != Empty
}

// Tile is what the grid reports for a coordinate.
type Tile struct {
	Behavior  Behavior
	SlopeType string // Set when Behavior is Slope
	Item      string // Contents of a bump tile
}

// Direction is the side an actor approaches a tile from.
type Direction uint8

const (
	FromBelow Direction = iota
	FromAbove
	FromLeft
	FromRight
)

func (d Direction) String() string {
	switch d {
	case FromBelow:
		return "below"
	case FromAbove:
		return "above"
	case FromLeft:
		return "left"
	case FromRight:
		return "right"
	}
	return "unknown"
}

// Result is the tri-state outcome of an interaction.
type Result uint8

const (
	// None: no tile, or the tile has no interactive behavior.
	None Result = iota
	// Reacted: the tile reacted and no longer blocks (it broke).
	Reacted
	// ReactedBlocking: the tile reacted but still absorbs momentum.
	ReactedBlocking
)

func (r Result) String() string {
	switch r {
	case None:
		return "none"
	case Reacted:
		return "reacted"
	case ReactedBlocking:
		return "reacted_blocking"
	}
	return "unknown"
}

// Purpose tags why the movement core asked for an interaction.
type Purpose uint8

const (
	PurposeHeadBump Purpose = iota
	PurposeGroundpound
	PurposeMegaBreak
	PurposeShell
)

// Request is an interaction the movement core wants resolved this tick.
type Request struct {
	Coord   Coord
	From    Direction
	Purpose Purpose
}

// Actor describes the avatar touching the tile.
type Actor struct {
	Powerup     netconfig.PowerupState
	Groundpound bool
	Drill       bool
	InShell     bool
}

// Grid is the shared level grid collaborator.
type Grid interface {
	GetTileBehavior(c Coord) (Tile, bool)
	ApplyTileReaction(c Coord, newBehavior Behavior)
}
