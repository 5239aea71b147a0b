package components

import (
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/yohamta/donburi"
)

// AvatarData points a drawable entity at an avatar simulated elsewhere: the
// local match or the remote set owns State.
type AvatarData struct {
	ID    uint32
	State *movement.State
	Stars int
	Drift float64 // Distance between local prediction and server replay
}

var Avatar = donburi.NewComponentType[AvatarData]()
