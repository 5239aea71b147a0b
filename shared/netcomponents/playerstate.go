package netcomponents

import (
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	StateID      netconfig.StateID
	FacingRight  bool
	Powerup      netconfig.PowerupState
	Flags        uint16  // netsync.Flag bits of the last server tick
	Growth       float64 // Mega scale progress, 0..1
	Stars        int
	LastSequence uint32 // Last PlayerDelta sequence applied by the server
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
