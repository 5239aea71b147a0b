// Package assets embeds the level files shipped with the debug client.
package assets

import (
	"embed"
	"fmt"

	"github.com/automoto/jumpsync/shared/level"
)

//go:embed all:levels
var assetFS embed.FS

// LevelsDir is the embedded directory holding the .tmx files.
const LevelsDir = "levels"

// LoadLevels parses every embedded level.
func LoadLevels() (map[string]*level.Level, []string, error) {
	return level.LoadAll(assetFS, LevelsDir)
}

// LoadLevel returns the embedded level called name, or the first level when
// name is empty. Each call parses a fresh copy, so callers may mutate it.
func LoadLevel(name string) (*level.Level, error) {
	levels, names, err := LoadLevels()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = names[0]
	}
	lvl, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("level %q not embedded (have %v)", name, names)
	}
	return lvl, nil
}
