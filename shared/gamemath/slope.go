package gamemath

import (
	"math"

	"github.com/solarlune/resolv"
)

// Slope tags carried by ramp tiles, both in the TMX "slope" property and on
// the resolv objects built from them.
const (
	Slope45UpRight     = "45_up_right"
	Slope45UpLeft      = "45_up_left"
	Slope22UpRightLow  = "22_up_right_low"
	Slope22UpRightHigh = "22_up_right_high"
	Slope22UpLeftHigh  = "22_up_left_high"
	Slope22UpLeftLow   = "22_up_left_low"
)

var gentleAngle = math.Atan(0.5) * 180 / math.Pi

// SlopeAngle returns the surface angle in degrees for a slope tag. Positive
// angles rise to the right.
func SlopeAngle(slopeType string) float64 {
	switch slopeType {
	case Slope45UpRight:
		return 45
	case Slope45UpLeft:
		return -45
	case Slope22UpRightLow, Slope22UpRightHigh:
		return gentleAngle
	case Slope22UpLeftHigh, Slope22UpLeftLow:
		return -gentleAngle
	}
	return 0
}

// SurfaceFraction returns the surface height inside a tile as a fraction of
// the tile height, for a relative x in [0, 1].
func SurfaceFraction(slopeType string, fx float64) float64 {
	fx = Clamp(fx, 0, 1)
	switch slopeType {
	case Slope45UpRight:
		return fx
	case Slope45UpLeft:
		return 1 - fx
	case Slope22UpRightLow:
		return fx / 2
	case Slope22UpRightHigh:
		return 0.5 + fx/2
	case Slope22UpLeftHigh:
		return 1 - fx/2
	case Slope22UpLeftLow:
		return 0.5 - fx/2
	}
	return 1
}

// GetSlopeSurfaceY calculates the slope surface Y at the object's center X.
func GetSlopeSurfaceY(object *resolv.Object, ramp *resolv.Object) float64 {
	centerX := object.X + object.W/2
	relativeX := Clamp(centerX-ramp.X, 0, ramp.W)
	return ramp.Y + ramp.H*SurfaceFraction(RampSlopeType(ramp), relativeX/ramp.W)
}

// RampSlopeType returns the slope tag carried by a ramp object, or "".
func RampSlopeType(ramp *resolv.Object) string {
	for _, tag := range []string{
		Slope45UpRight, Slope45UpLeft,
		Slope22UpRightLow, Slope22UpRightHigh,
		Slope22UpLeftHigh, Slope22UpLeftLow,
	} {
		if ramp.HasTags(tag) {
			return tag
		}
	}
	return ""
}

// SnapToSlopeY returns the Y position that puts the object's feet on a slope
// surface, lifted by offset.
func SnapToSlopeY(surfaceY, offset float64) float64 {
	return surfaceY + offset
}
