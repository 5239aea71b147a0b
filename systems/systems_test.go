package systems

import (
	"fmt"
	"testing"

	"github.com/automoto/jumpsync/archetypes"
	"github.com/automoto/jumpsync/components"
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func newECS() *ecs.ECS {
	e := ecs.NewECS(donburi.NewWorld())
	archetypes.HUD.Spawn(e)
	return e
}

func countAvatars(e *ecs.ECS) map[uint32]*components.AvatarData {
	out := map[uint32]*components.AvatarData{}
	tags.RemoteAvatar.Each(e.World, func(entry *donburi.Entry) {
		a := components.Avatar.Get(entry)
		out[a.ID] = a
	})
	return out
}

func TestSyncAvatars(t *testing.T) {
	e := newECS()
	s1 := movement.NewState(gamemath.Vector{X: 1}, netconfig.Small)
	s2 := movement.NewState(gamemath.Vector{X: 2}, netconfig.Small)

	syncAvatars(e, tags.RemoteAvatar, archetypes.RemoteAvatar, []avatarView{
		{ID: 1, State: &s1},
		{ID: 2, State: &s2, Stars: 3},
	})
	got := countAvatars(e)
	if len(got) != 2 || got[2].Stars != 3 || got[1].State != &s1 {
		t.Fatalf("after spawn: %+v", got)
	}

	syncAvatars(e, tags.RemoteAvatar, archetypes.RemoteAvatar, []avatarView{
		{ID: 2, State: &s2, Stars: 5},
	})
	got = countAvatars(e)
	if len(got) != 1 || got[2] == nil || got[2].Stars != 5 {
		t.Errorf("after removal: %+v", got)
	}
}

func TestLogEventKeepsTail(t *testing.T) {
	e := newECS()
	for i := 0; i < config.Client.EventLog+3; i++ {
		LogEvent(e, "event %d", i)
	}
	h := hud(e)
	if len(h.Events) != config.Client.EventLog {
		t.Fatalf("log length = %d", len(h.Events))
	}
	want := fmt.Sprintf("event %d", config.Client.EventLog+2)
	if last := h.Events[len(h.Events)-1]; last != want {
		t.Errorf("last = %q, want %q", last, want)
	}

	SetStatus(e, "a", "b")
	SetStatus(e, "c")
	if len(h.Status) != 1 || h.Status[0] != "c" {
		t.Errorf("status = %v", h.Status)
	}
}

func TestWorldToPixels(t *testing.T) {
	s := config.Client.TileScale
	x, y := worldToPixels(gamemath.Vector{X: 2, Y: 1}, 10)
	if x != 2*s || y != 9*s {
		t.Errorf("pixels = %v,%v", x, y)
	}

	r := rectToPixels(gamemath.Rect{X: 2, Y: 1, W: 1, H: 2}, 10)
	if r.X != 2*s || r.Y != 7*s || r.W != s || r.H != 2*s {
		t.Errorf("rect = %+v", r)
	}
}

func TestClampCamera(t *testing.T) {
	// A level narrower than the screen is centered.
	x, _ := clampCamera(0, 0, 4, 100)
	if want := 2 * config.Client.TileScale; x != want {
		t.Errorf("x = %v, want %v", x, want)
	}

	// A wide level clamps at its edges.
	x, _ = clampCamera(-50, 0, 1000, 100)
	if want := float64(config.Client.Width) / 2; x != want {
		t.Errorf("x = %v, want %v", x, want)
	}
}
