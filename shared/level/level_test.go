package level

import (
	"math"
	"os"
	"testing"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/leveldata"
	"github.com/automoto/jumpsync/shared/tiles"
)

func flatLevel(w, h int) *Level {
	l := New("flat", w, h)
	for x := 0; x < w; x++ {
		l.SetTile(tiles.Coord{X: x, Y: 0}, tiles.Tile{Behavior: tiles.Solid})
	}
	return l
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func avatarBox(x, y float64) gamemath.Rect {
	return gamemath.RectAtFeet(gamemath.Vector{X: x, Y: y}, 0.75, 0.84)
}

func TestMoveLandsOnFloor(t *testing.T) {
	l := flatLevel(10, 10)
	c := l.Move(avatarBox(5, 1.5), gamemath.Vector{Y: -1})

	if !c.OnGround {
		t.Fatal("expected to land")
	}
	if !near(c.Box.Y, 1) {
		t.Errorf("feet = %v, want 1", c.Box.Y)
	}
	if len(c.Floor) == 0 {
		t.Error("no floor tiles reported")
	}
	for _, f := range c.Floor {
		if f.Y != 0 || f.X < 4 || f.X > 5 {
			t.Errorf("unexpected floor tile %+v", f)
		}
	}
}

func TestMoveStandingStaysGrounded(t *testing.T) {
	l := flatLevel(10, 10)
	c := l.Move(avatarBox(5, 1), gamemath.Vector{})
	if !c.OnGround || !near(c.Box.Y, 1) {
		t.Fatalf("standing contact = %+v", c)
	}
	if c.HitLeft || c.HitRight || c.HitRoof {
		t.Errorf("phantom contacts: %+v", c)
	}
}

func TestMoveBoundsTheSweep(t *testing.T) {
	l := flatLevel(10, 40)
	start := avatarBox(5, 2)

	c := l.Move(start, gamemath.Vector{Y: 1e12})
	reach := float64(config.Physics.MaxSweepSteps) * config.Physics.MaxSweepFraction
	if rise := c.Box.Y - start.Y; rise <= 0 || rise > reach+1e-6 {
		t.Errorf("rise = %v, want within (0, %v]", rise, reach)
	}

	c = l.Move(start, gamemath.Vector{X: math.NaN()})
	if c.Box != start {
		t.Errorf("box = %+v after a non-finite move, want %+v", c.Box, start)
	}
}

func TestMoveHitsWall(t *testing.T) {
	l := flatLevel(10, 10)
	for y := 1; y <= 3; y++ {
		l.SetTile(tiles.Coord{X: 7, Y: y}, tiles.Tile{Behavior: tiles.Solid})
	}

	c := l.Move(avatarBox(6.5, 1), gamemath.Vector{X: 0.5})
	if !c.HitRight {
		t.Fatal("expected a right wall hit")
	}
	if !near(c.Box.Right(), 7) {
		t.Errorf("right edge = %v, want 7", c.Box.Right())
	}
	found := false
	for _, w := range c.Right {
		if w == (tiles.Coord{X: 7, Y: 1}) {
			found = true
		}
	}
	if !found {
		t.Errorf("wall tiles = %v", c.Right)
	}
}

func TestMoveHitsCeilingTile(t *testing.T) {
	l := flatLevel(10, 10)
	l.SetTile(tiles.Coord{X: 5, Y: 3}, tiles.Tile{Behavior: tiles.Breakable})

	c := l.Move(avatarBox(5.5, 1.9), gamemath.Vector{Y: 0.5})
	if !c.HitRoof {
		t.Fatal("expected a roof hit")
	}
	if !near(c.Box.Top(), 3) {
		t.Errorf("head = %v, want 3", c.Box.Top())
	}
	if len(c.Roof) != 1 || c.Roof[0] != (tiles.Coord{X: 5, Y: 3}) {
		t.Errorf("roof tiles = %v", c.Roof)
	}
}

func TestMoveLandsOnRamp(t *testing.T) {
	l := flatLevel(10, 10)
	l.SetTile(tiles.Coord{X: 4, Y: 1}, tiles.Tile{Behavior: tiles.Slope, SlopeType: gamemath.Slope45UpRight})

	c := l.Move(avatarBox(4.5, 2), gamemath.Vector{Y: -0.5})
	if !c.OnGround {
		t.Fatal("expected to land on the ramp")
	}
	if !near(c.Box.Y, 1.5) {
		t.Errorf("feet = %v, want 1.5", c.Box.Y)
	}
	if c.FloorAngle != 45 {
		t.Errorf("floor angle = %v, want 45", c.FloorAngle)
	}

	angle, ok := l.SurfaceAngle(avatarBox(4.5, 1.5), true, 0.05)
	if !ok || angle != 45 {
		t.Errorf("SurfaceAngle = %v, %v", angle, ok)
	}
}

func TestTileReactions(t *testing.T) {
	l := flatLevel(4, 4)
	brick := tiles.Coord{X: 1, Y: 2}
	block := tiles.Coord{X: 2, Y: 2}
	l.SetTile(brick, tiles.Tile{Behavior: tiles.Breakable})
	l.SetTile(block, tiles.Tile{Behavior: tiles.Bump, Item: "star"})

	box := gamemath.Rect{X: 1.1, Y: 2.1, W: 0.5, H: 0.5}
	if !l.Overlaps(box) {
		t.Fatal("box inside the brick should overlap")
	}

	l.ApplyTileReaction(brick, tiles.Empty)
	if _, ok := l.GetTileBehavior(brick); ok {
		t.Error("brick still present")
	}
	if l.Overlaps(box) {
		t.Error("removed brick still collides")
	}

	l.ApplyTileReaction(block, tiles.Used)
	tile, ok := l.GetTileBehavior(block)
	if !ok || tile.Behavior != tiles.Used || tile.Item != "star" {
		t.Errorf("block = %+v, %v", tile, ok)
	}

	l.ApplyTileReaction(tiles.Coord{X: 3, Y: 3}, tiles.Empty)
	if l.TileCount() != 5 {
		t.Errorf("tile count = %d, want 5", l.TileCount())
	}

	seen := map[tiles.Behavior]int{}
	l.EachTile(func(_ tiles.Coord, t tiles.Tile) {
		seen[t.Behavior]++
	})
	if seen[tiles.Solid] != 4 || seen[tiles.Used] != 1 || seen[tiles.Breakable] != 0 {
		t.Errorf("EachTile saw %v", seen)
	}
}

func TestFromData(t *testing.T) {
	data, err := leveldata.LoadCollisionData(os.DirFS("../leveldata/testdata"), "levels/test.tmx")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	l := FromData(data)

	if l.TileCount() != 12 {
		t.Errorf("tiles = %d, want 12", l.TileCount())
	}
	tile, ok := l.GetTileBehavior(tiles.Coord{X: 3, Y: 3})
	if !ok || tile.Behavior != tiles.Bump || tile.Item != "mushroom" {
		t.Errorf("question block = %+v, %v", tile, ok)
	}
	if sp := l.Spawn(0); sp != (gamemath.Vector{X: 1, Y: 1}) {
		t.Errorf("spawn 0 = %+v", sp)
	}
	if sp := l.Spawn(3); sp != (gamemath.Vector{X: 5, Y: 1}) {
		t.Errorf("spawn 3 wraps to %+v", sp)
	}

	w, ok := l.WarpByID(1)
	if !ok || w.Direction != (gamemath.Vector{Y: -1}) || w.Target != 2 {
		t.Errorf("warp 1 = %+v, %v", w, ok)
	}
	if _, ok := l.WarpAt(avatarBox(0.5, 1)); !ok {
		t.Error("avatar on the pipe should find warp 1")
	}
}

func TestLoadAll(t *testing.T) {
	levels, names, err := LoadAll(os.DirFS("../leveldata/testdata"), "levels")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(names) != 1 || levels[names[0]] == nil {
		t.Fatalf("names = %v", names)
	}
}
