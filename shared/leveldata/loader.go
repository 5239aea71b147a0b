package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from the TMX file.
const (
	TileLayer       = "Tiles"
	legacyTileLayer = "wg-tiles"
	SpawnGroup      = "PlayerSpawn"
	WarpGroup       = "Warps"
)

// LoadCollisionData parses a TMX file and returns collision data (tiles,
// spawn points and warps). It takes an fs.FS so callers can pass embed.FS
// (client) or os.DirFS (server).
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &CollisionData{
		Name:      strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		MapWidth:  levelMap.Width,
		MapHeight: levelMap.Height,
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != TileLayer && layer.Name != legacyTileLayer {
			continue
		}
		for row := 0; row < levelMap.Height; row++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[row*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				td := TileData{X: x, Y: levelMap.Height - 1 - row}
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					td.Behavior = tilesetTile.Properties.GetString("behavior")
					td.SlopeType = tilesetTile.Properties.GetString("slope")
					td.Item = tilesetTile.Properties.GetString("item")
				}
				if td.SlopeType != "" {
					td.Behavior = "slope"
				}
				data.Tiles = append(data.Tiles, td)
			}
		}
		break
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	mapH := float64(levelMap.Height)

	// Tiled objects are anchored top-left in pixels, +Y down.
	feet := func(o *tiled.Object) (float64, float64) {
		return (o.X + o.Width/2) / tileW, mapH - (o.Y+o.Height)/tileH
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			for _, o := range og.Objects {
				x, y := feet(o)
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     x,
					Y:     y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case WarpGroup:
			for _, o := range og.Objects {
				x, y := feet(o)
				data.Warps = append(data.Warps, Warp{
					ID:        o.Properties.GetInt("id"),
					Target:    o.Properties.GetInt("target"),
					X:         x,
					Y:         y,
					Direction: o.Properties.GetString("direction"),
					Door:      o.Properties.GetBool("door"),
				})
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})
	sort.Slice(data.Warps, func(i, j int) bool {
		return data.Warps[i].ID < data.Warps[j].ID
	})

	return data, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads collision
// data for each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*CollisionData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", levelsDir, ErrNoLevels)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadCollisionData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
