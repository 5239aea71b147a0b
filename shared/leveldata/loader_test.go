package leveldata

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"
)

func TestLoadCollisionData(t *testing.T) {
	data, err := LoadCollisionData(os.DirFS("testdata"), "levels/test.tmx")
	if err != nil {
		t.Fatalf("LoadCollisionData: %v", err)
	}

	if data.Name != "test" || data.MapWidth != 8 || data.MapHeight != 6 {
		t.Fatalf("header = %q %dx%d", data.Name, data.MapWidth, data.MapHeight)
	}
	if len(data.Tiles) != 12 {
		t.Fatalf("tiles = %d, want 12", len(data.Tiles))
	}

	byPos := make(map[[2]int]TileData, len(data.Tiles))
	for _, td := range data.Tiles {
		byPos[[2]int{td.X, td.Y}] = td
	}

	tests := []struct {
		x, y     int
		behavior string
		slope    string
		item     string
	}{
		{x: 0, y: 0, behavior: ""},
		{x: 2, y: 3, behavior: "brick"},
		{x: 3, y: 3, behavior: "question", item: "mushroom"},
		{x: 6, y: 1, behavior: "slope", slope: "45_up_right"},
		{x: 5, y: 0, behavior: "ice"},
		{x: 7, y: 1, behavior: ""},
	}
	for _, tt := range tests {
		td, ok := byPos[[2]int{tt.x, tt.y}]
		if !ok {
			t.Errorf("no tile at (%d,%d)", tt.x, tt.y)
			continue
		}
		if td.Behavior != tt.behavior || td.SlopeType != tt.slope || td.Item != tt.item {
			t.Errorf("tile (%d,%d) = %+v", tt.x, tt.y, td)
		}
	}

	if len(data.SpawnPoints) != 2 {
		t.Fatalf("spawns = %d, want 2", len(data.SpawnPoints))
	}
	if sp := data.SpawnPoints[0]; sp.X != 1 || sp.Y != 1 || sp.Index != 0 {
		t.Errorf("first spawn = %+v", sp)
	}
	if sp := data.SpawnPoints[1]; sp.X != 5 || sp.Y != 1 || sp.Index != 1 {
		t.Errorf("second spawn = %+v", sp)
	}

	if len(data.Warps) != 2 {
		t.Fatalf("warps = %d, want 2", len(data.Warps))
	}
	pipe, door := data.Warps[0], data.Warps[1]
	if pipe.ID != 1 || pipe.Target != 2 || pipe.Direction != "down" || pipe.Door {
		t.Errorf("pipe = %+v", pipe)
	}
	if pipe.X != 0.5 || pipe.Y != 1 {
		t.Errorf("pipe position = (%v,%v)", pipe.X, pipe.Y)
	}
	if !door.Door || door.X != 6.5 || door.Y != 2 {
		t.Errorf("door = %+v", door)
	}
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := LoadAllLevels(os.DirFS("testdata"), "levels")
	if err != nil {
		t.Fatalf("LoadAllLevels: %v", err)
	}
	if len(names) != 1 || names[0] != "test" {
		t.Fatalf("names = %v", names)
	}
	if levels["test"] == nil {
		t.Fatal("level missing from map")
	}
}

func TestLoadAllLevelsEmpty(t *testing.T) {
	_, _, err := LoadAllLevels(fstest.MapFS{}, "levels")
	if !errors.Is(err, ErrNoLevels) {
		t.Fatalf("err = %v, want ErrNoLevels", err)
	}
}
