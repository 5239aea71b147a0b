// Package protocol fixes the esync wire IDs of the synced avatar and match
// components.
package protocol

import (
	"fmt"

	"github.com/automoto/jumpsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Sync IDs. necs reserves 1 for its NetworkId component.
const (
	SyncIDNetPosition    uint = 10
	SyncIDNetVelocity    uint = 11
	SyncIDNetPlayerState uint = 12
	SyncIDNetGameState   uint = 13
)

// Interpolation IDs for the kinematic components.
const (
	InterpIDNetPosition uint8 = 10
	InterpIDNetVelocity uint8 = 11
)

// RegisterComponents registers every synced component with esync. The
// server and the client must both call it before connecting so the IDs
// line up.
func RegisterComponents() error {
	// Avatar kinematics interpolate between snapshots; the position lerp
	// snaps when the warp counter changes.
	if err := register("avatar position", SyncIDNetPosition, netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition)); err != nil {
		return err
	}
	if err := register("avatar velocity", SyncIDNetVelocity, netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity)); err != nil {
		return err
	}

	// Mode flags, power-up and stars change in steps.
	if err := register("avatar state", SyncIDNetPlayerState, netcomponents.NetPlayerState); err != nil {
		return err
	}
	return register("match state", SyncIDNetGameState, netcomponents.NetGameState)
}

func register[T any](name string, id uint, ctype *donburi.ComponentType[T], opts ...esync.RegisterOption[T]) error {
	var zero T
	if err := esync.RegisterComponent(id, zero, ctype, opts...); err != nil {
		return fmt.Errorf("register %s (sync id %d): %w", name, id, err)
	}
	return nil
}
