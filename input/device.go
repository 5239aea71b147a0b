package input

import (
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/hajimehoshi/ebiten/v2"
)

// Device polls the keyboard and every standard-layout gamepad.
type Device struct {
	Config Config

	gamepadIDs []ebiten.GamepadID // reused to avoid allocations
}

func NewDevice() *Device {
	return &Device{Config: Defaults}
}

// Sample must be called from the ebiten update goroutine.
func (d *Device) Sample() movement.InputSample {
	var actions Actions
	d.gamepadIDs = ebiten.AppendGamepadIDs(d.gamepadIDs[:0])

	for actionID, binding := range d.Config.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				actions[actionID] = true
			}
		}
		for _, gpID := range d.gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					actions[actionID] = true
				}
			}
		}
	}

	return Combine(actions, d.stick(), d.Config.AnalogDeadzone)
}

// stick returns the left stick of the first gamepad pushed past the deadzone.
func (d *Device) stick() gamemath.Vector {
	for _, gpID := range d.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		v := gamemath.Vector{
			X: ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal),
			Y: ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		if v.Len() > d.Config.AnalogDeadzone {
			return v
		}
	}
	return gamemath.Vector{}
}
