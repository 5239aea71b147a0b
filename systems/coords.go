package systems

import (
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
)

// worldToPixels converts a world point (tiles, +Y up) to level pixels
// (+Y down) for a level levelHeight tiles tall.
func worldToPixels(p gamemath.Vector, levelHeight int) (x, y float64) {
	s := config.Client.TileScale
	return p.X * s, (float64(levelHeight) - p.Y) * s
}

// rectToPixels converts a world rectangle to a pixel rectangle whose X, Y
// is the top-left corner.
func rectToPixels(r gamemath.Rect, levelHeight int) gamemath.Rect {
	s := config.Client.TileScale
	x, y := worldToPixels(gamemath.Vector{X: r.Left(), Y: r.Top()}, levelHeight)
	return gamemath.Rect{X: x, Y: y, W: r.W * s, H: r.H * s}
}
