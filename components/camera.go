package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the view center in screen pixels.
type CameraData struct {
	Position   math.Vec2
	LookAheadX float64 // Current smoothed X offset for look-ahead
}

type ScreenShakeData struct {
	Intensity float64
	Duration  int // frames
	Elapsed   int
}

var Camera = donburi.NewComponentType[CameraData]()
var ScreenShake = donburi.NewComponentType[ScreenShakeData]()
