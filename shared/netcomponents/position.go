package netcomponents

import "github.com/yohamta/donburi"

// NetPositionData is the avatar's feet position in tiles. Warp increments on
// every teleport (pipe, respawn, level wrap) so interpolation can snap.
type NetPositionData struct {
	X, Y float64
	Warp uint8
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

// LerpNetPosition interpolates between two positions
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	if from.Warp != to.Warp {
		return &to
	}
	return &NetPositionData{
		X:    from.X + (to.X-from.X)*t,
		Y:    from.Y + (to.Y-from.Y)*t,
		Warp: to.Warp,
	}
}
