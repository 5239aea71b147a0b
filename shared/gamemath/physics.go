package gamemath

import "math"

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Clamp constrains value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// MoveTowards steps current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// ClampFall clamps only the falling direction of a vertical speed.
// terminal is a positive magnitude.
func ClampFall(speedY, terminal float64) float64 {
	if speedY < -terminal {
		return -terminal
	}
	return speedY
}

// Wrap maps x into [min, max) for looping levels.
func Wrap(x, min, max float64) float64 {
	width := max - min
	if width <= 0 {
		return x
	}
	x = math.Mod(x-min, width)
	if x < 0 {
		x += width
	}
	return x + min
}
