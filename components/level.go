package components

import (
	"github.com/automoto/jumpsync/shared/level"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Level *level.Level
}

var Level = donburi.NewComponentType[LevelData]()
