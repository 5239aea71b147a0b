package core

import (
	"fmt"
	"log"
	"os"

	"github.com/automoto/jumpsync/shared/level"
)

// LoadLevel loads every .tmx level under assetsDir/levels and returns the
// one called name, or the first one when name is empty.
func LoadLevel(assetsDir, name string) (*level.Level, error) {
	levels, names, err := level.LoadAll(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, fmt.Errorf("load levels from %s: %w", assetsDir, err)
	}
	if name == "" {
		name = names[0]
	}
	lvl, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("level %q not found (have %v)", name, names)
	}

	log.Printf("[server] loaded level %s: %d tiles, %d spawn points, %d warps, %dx%d",
		lvl.Name, lvl.TileCount(), len(lvl.Spawns), len(lvl.Warps), lvl.Width, lvl.Height)
	return lvl, nil
}
