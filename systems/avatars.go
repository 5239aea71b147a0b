package systems

import (
	"github.com/automoto/jumpsync/components"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type spawner interface {
	Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry
}

// avatarView is what the renderer needs from a simulated avatar.
type avatarView struct {
	ID    uint32
	State *movement.State
	Stars int
	Drift float64
}

// syncAvatars keeps exactly one tagged entity per view, spawning missing
// ones from arch and removing those whose avatar is gone.
func syncAvatars(e *ecs.ECS, tag *donburi.ComponentType[donburi.Tag], arch spawner, views []avatarView) {
	byID := make(map[uint32]avatarView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	var stale []*donburi.Entry
	tag.Each(e.World, func(entry *donburi.Entry) {
		a := components.Avatar.Get(entry)
		v, ok := byID[a.ID]
		if !ok {
			stale = append(stale, entry)
			return
		}
		a.State, a.Stars, a.Drift = v.State, v.Stars, v.Drift
		delete(byID, a.ID)
	})
	for _, entry := range stale {
		entry.Remove()
	}

	for _, v := range views {
		if _, missing := byID[v.ID]; !missing {
			continue
		}
		entry := arch.Spawn(e)
		components.Avatar.SetValue(entry, components.AvatarData{
			ID:    v.ID,
			State: v.State,
			Stars: v.Stars,
			Drift: v.Drift,
		})
	}
}
