package netcomponents

import "github.com/yohamta/donburi"

type MatchState int

const (
	MatchStateWaiting MatchState = iota
	MatchStatePlaying
)

type NetGameStateData struct {
	Level      string
	Tick       uint64
	Players    int
	MatchState MatchState
}

var NetGameState = donburi.NewComponentType[NetGameStateData]()
