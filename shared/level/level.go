// Package level is the shared tile grid: a resolv space built from level
// data. It serves both as the tile grid behind the tile resolver and as the
// collider the movement integrator sweeps hitboxes through.
package level

import (
	"fmt"
	"io/fs"

	"github.com/solarlune/resolv"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/leveldata"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/tiles"
)

// TileSize is the size of one tile in resolv space units. A power of two
// keeps the tile/space conversion exact.
const TileSize = 16

const (
	tagSolid  = "solid"
	tagRamp   = "ramp"
	tagCursor = "cursor"
)

// Warp is a pipe or door entrance in world units.
type Warp struct {
	ID        int
	Target    int
	Position  gamemath.Vector
	Direction gamemath.Vector
	Door      bool
}

type cell struct {
	tile tiles.Tile
	obj  *resolv.Object
}

// Level is a loaded level. It is not safe for concurrent use: the server
// steps every avatar from its tick goroutine and each client owns its copy.
type Level struct {
	Name   string
	Width  int
	Height int
	Spawns []gamemath.Vector
	Warps  []Warp

	space  *resolv.Space
	cells  map[tiles.Coord]*cell
	cursor *resolv.Object
}

// New creates an empty level of width x height tiles.
func New(name string, width, height int) *Level {
	space := resolv.NewSpace(width*TileSize, height*TileSize, TileSize, TileSize)
	cursor := resolv.NewObject(0, 0, 1, 1, tagCursor)
	space.Add(cursor)
	return &Level{
		Name:   name,
		Width:  width,
		Height: height,
		space:  space,
		cells:  make(map[tiles.Coord]*cell),
		cursor: cursor,
	}
}

// FromData builds a level from parsed TMX data.
func FromData(data *leveldata.CollisionData) *Level {
	l := New(data.Name, data.MapWidth, data.MapHeight)
	for _, td := range data.Tiles {
		l.SetTile(tiles.Coord{X: td.X, Y: td.Y}, tiles.Tile{
			Behavior:  tiles.ParseBehavior(td.Behavior),
			SlopeType: td.SlopeType,
			Item:      td.Item,
		})
	}
	for _, sp := range data.SpawnPoints {
		l.Spawns = append(l.Spawns, gamemath.Vector{X: sp.X, Y: sp.Y})
	}
	for _, w := range data.Warps {
		l.Warps = append(l.Warps, Warp{
			ID:        w.ID,
			Target:    w.Target,
			Position:  gamemath.Vector{X: w.X, Y: w.Y},
			Direction: direction(w.Direction),
			Door:      w.Door,
		})
	}
	return l
}

// LoadAll loads every .tmx level under dir, keyed by stem name, plus the
// sorted name list.
func LoadAll(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	dataMap, names, err := leveldata.LoadAllLevels(fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}
	levels := make(map[string]*Level, len(names))
	for _, name := range names {
		levels[name] = FromData(dataMap[name])
	}
	return levels, names, nil
}

func direction(name string) gamemath.Vector {
	switch name {
	case "up":
		return gamemath.Vector{Y: 1}
	case "left":
		return gamemath.Vector{X: -1}
	case "right":
		return gamemath.Vector{X: 1}
	}
	return gamemath.Vector{Y: -1}
}

// SetTile places or replaces a tile. Empty removes it.
func (l *Level) SetTile(c tiles.Coord, t tiles.Tile) {
	if old, ok := l.cells[c]; ok {
		l.space.Remove(old.obj)
		delete(l.cells, c)
	}
	if t.Behavior == tiles.Empty {
		return
	}

	x, y := float64(c.X*TileSize), float64(c.Y*TileSize)
	var obj *resolv.Object
	if t.Behavior == tiles.Slope {
		obj = resolv.NewObject(x, y, TileSize, TileSize, tagRamp, t.SlopeType)
	} else {
		obj = resolv.NewObject(x, y, TileSize, TileSize, tagSolid)
	}
	obj.SetShape(resolv.NewRectangle(0, 0, TileSize, TileSize))
	obj.Data = c
	l.space.Add(obj)
	l.cells[c] = &cell{tile: t, obj: obj}
}

// TileCount returns the number of non-empty tiles.
func (l *Level) TileCount() int {
	return len(l.cells)
}

// EachTile calls fn for every non-empty tile, in no particular order.
func (l *Level) EachTile(fn func(c tiles.Coord, t tiles.Tile)) {
	for c, cl := range l.cells {
		fn(c, cl.tile)
	}
}

// Bounds returns the level limits for the simulation context.
func (l *Level) Bounds() movement.Bounds {
	return movement.Bounds{MinX: 0, MaxX: float64(l.Width), MinY: -2, MaxY: float64(l.Height)}
}

// Spawn returns spawn point i, wrapping around the list.
func (l *Level) Spawn(i int) gamemath.Vector {
	if len(l.Spawns) == 0 {
		return gamemath.Vector{X: float64(l.Width) / 2, Y: float64(l.Height)}
	}
	if i < 0 {
		i = -i
	}
	return l.Spawns[i%len(l.Spawns)]
}

// WarpByID finds a warp.
func (l *Level) WarpByID(id int) (Warp, bool) {
	for _, w := range l.Warps {
		if w.ID == id {
			return w, true
		}
	}
	return Warp{}, false
}

// WarpAt returns the warp whose entrance lies inside box.
func (l *Level) WarpAt(box gamemath.Rect) (Warp, bool) {
	for _, w := range l.Warps {
		p := w.Position
		if p.X >= box.Left() && p.X <= box.Right() && p.Y >= box.Bottom()-0.5 && p.Y <= box.Top() {
			return w, true
		}
	}
	return Warp{}, false
}

// GetTileBehavior implements tiles.Grid.
func (l *Level) GetTileBehavior(c tiles.Coord) (tiles.Tile, bool) {
	if cl, ok := l.cells[c]; ok {
		return cl.tile, true
	}
	return tiles.Tile{}, false
}

// ApplyTileReaction implements tiles.Grid.
func (l *Level) ApplyTileReaction(c tiles.Coord, b tiles.Behavior) {
	cl, ok := l.cells[c]
	if !ok {
		return
	}
	if b == tiles.Empty {
		l.SetTile(c, tiles.Tile{})
		return
	}
	cl.tile.Behavior = b
}
