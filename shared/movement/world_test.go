package movement

import (
	"math"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
)

const dt = 1.0 / 60.0

// gridWorld is a minimal tile-grid collider and tile grid for tests.
type gridWorld struct {
	cells     map[tiles.Coord]tiles.Tile
	angle     float64
	hasAngle  bool
	ceilAngle float64
	hasCeil   bool
}

func newWorld() *gridWorld {
	return &gridWorld{cells: make(map[tiles.Coord]tiles.Tile)}
}

// floorWorld has solid ground along row 0 from x0 to x1 inclusive.
func floorWorld(x0, x1 int) *gridWorld {
	w := newWorld()
	w.fill(x0, 0, x1, 0, tiles.Solid)
	return w
}

func (w *gridWorld) fill(x0, y0, x1, y1 int, b tiles.Behavior) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			w.cells[tiles.Coord{X: x, Y: y}] = tiles.Tile{Behavior: b}
		}
	}
}

func (w *gridWorld) GetTileBehavior(c tiles.Coord) (tiles.Tile, bool) {
	t, ok := w.cells[c]
	return t, ok
}

func (w *gridWorld) ApplyTileReaction(c tiles.Coord, b tiles.Behavior) {
	if b == tiles.Empty {
		delete(w.cells, c)
		return
	}
	t := w.cells[c]
	t.Behavior = b
	w.cells[c] = t
}

func (w *gridWorld) blocked(r gamemath.Rect) []tiles.Coord {
	var out []tiles.Coord
	for x := int(math.Floor(r.Left())); x < int(math.Ceil(r.Right())); x++ {
		for y := int(math.Floor(r.Bottom())); y < int(math.Ceil(r.Top())); y++ {
			c := tiles.Coord{X: x, Y: y}
			if _, ok := w.cells[c]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func (w *gridWorld) Move(box gamemath.Rect, d gamemath.Vector) Contact {
	var c Contact

	nb := box.Translate(gamemath.Vector{X: d.X})
	if hits := w.blocked(nb); len(hits) > 0 && d.X != 0 {
		if d.X > 0 {
			minX := hits[0].X
			for _, h := range hits {
				minX = min(minX, h.X)
			}
			nb.X = float64(minX) - nb.W
			c.HitRight = true
			c.Right = hits
		} else {
			maxX := hits[0].X
			for _, h := range hits {
				maxX = max(maxX, h.X)
			}
			nb.X = float64(maxX + 1)
			c.HitLeft = true
			c.Left = hits
		}
	}

	vb := nb.Translate(gamemath.Vector{Y: d.Y})
	if hits := w.blocked(vb); len(hits) > 0 {
		if d.Y > 0 {
			minY := hits[0].Y
			for _, h := range hits {
				minY = min(minY, h.Y)
			}
			vb.Y = float64(minY) - vb.H
			c.HitRoof = true
			for _, h := range hits {
				if h.Y == minY {
					c.Roof = append(c.Roof, h)
				}
			}
		} else {
			maxY := hits[0].Y
			for _, h := range hits {
				maxY = max(maxY, h.Y)
			}
			vb.Y = float64(maxY + 1)
			c.OnGround = true
			for _, h := range hits {
				if h.Y == maxY {
					c.Floor = append(c.Floor, h)
				}
			}
		}
	}
	if !c.OnGround && d.Y <= 0 {
		if hits := w.blocked(vb.Translate(gamemath.Vector{Y: -0.01})); len(hits) > 0 {
			c.OnGround = true
			c.Floor = hits
		}
	}
	if !c.HitLeft && len(w.blocked(vb.Translate(gamemath.Vector{X: -0.01}))) > 0 {
		c.HitLeft = true
	}
	if !c.HitRight && len(w.blocked(vb.Translate(gamemath.Vector{X: 0.01}))) > 0 {
		c.HitRight = true
	}
	if c.OnGround && w.hasAngle {
		c.FloorAngle = w.angle
	}
	c.Box = vb
	return c
}

func (w *gridWorld) Overlaps(box gamemath.Rect) bool {
	return len(w.blocked(box)) > 0
}

func (w *gridWorld) SurfaceAngle(_ gamemath.Rect, down bool, _ float64) (float64, bool) {
	if down {
		return w.angle, w.hasAngle
	}
	return w.ceilAngle, w.hasCeil
}

func (w *gridWorld) context() *SimulationContext {
	return NewContext(w, tiles.NewResolver(w), Bounds{})
}

// grounded returns a small avatar standing at x on row 0.
func grounded(x float64) State {
	s := NewState(gamemath.Vector{X: x, Y: 1}, netconfig.Small)
	s.OnGround = true
	s.WasOnGround = true
	return s
}

func runMax() float64 {
	return config.Movement.SpeedStageMax[config.Movement.RunStage]
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func hasEvent(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

var (
	brick     = tiles.Coord{X: 5, Y: 2}
	brickTile = tiles.Tile{Behavior: tiles.Breakable}
)
