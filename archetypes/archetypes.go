package archetypes

import (
	"github.com/automoto/jumpsync/components"
	"github.com/automoto/jumpsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Render layers, drawn in order.
const (
	LayerWorld ecs.LayerID = iota
	LayerHUD
)

var (
	LocalAvatar = newArchetype(
		tags.LocalAvatar,
		components.Avatar,
	)
	RemoteAvatar = newArchetype(
		tags.RemoteAvatar,
		components.Avatar,
	)
	GhostAvatar = newArchetype(
		tags.GhostAvatar,
		components.Avatar,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
	HUD = newArchetype(
		components.HUD,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		LayerWorld,
		append(a.components, cs...)...,
	))
	return e
}
