package input

import (
	"testing"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
)

func actions(ids ...netconfig.ActionID) Actions {
	var a Actions
	for _, id := range ids {
		a[id] = true
	}
	return a
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name    string
		actions Actions
		stick   gamemath.Vector
		want    movement.InputSample
	}{
		{
			name: "idle",
			want: movement.InputSample{},
		},
		{
			name:    "run right and jump",
			actions: actions(netconfig.ActionMoveRight, netconfig.ActionRun, netconfig.ActionJump),
			want:    movement.InputSample{Joystick: gamemath.Vector{X: 1}, Run: true, Jump: true},
		},
		{
			name:    "left and right cancel",
			actions: actions(netconfig.ActionMoveLeft, netconfig.ActionMoveRight),
			want:    movement.InputSample{},
		},
		{
			name:    "crouch points the stick down",
			actions: actions(netconfig.ActionCrouch),
			want:    movement.InputSample{Joystick: gamemath.Vector{Y: -1}, Crouch: true},
		},
		{
			name:    "up wins over crouch",
			actions: actions(netconfig.ActionMoveUp, netconfig.ActionCrouch),
			want:    movement.InputSample{Joystick: gamemath.Vector{Y: 1}, Crouch: true},
		},
		{
			name:  "stick inside deadzone ignored",
			stick: gamemath.Vector{X: 0.1, Y: 0.1},
			want:  movement.InputSample{},
		},
		{
			name:    "stick overrides dpad and flips Y",
			actions: actions(netconfig.ActionMoveLeft, netconfig.ActionPower),
			stick:   gamemath.Vector{X: 0.5, Y: 0.75},
			want:    movement.InputSample{Joystick: gamemath.Vector{X: 0.5, Y: -0.75}, PowerAction: true},
		},
		{
			name:  "stick clamped",
			stick: gamemath.Vector{X: 1.5},
			want:  movement.InputSample{Joystick: gamemath.Vector{X: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.actions, tt.stick, 0.25)
			if got != tt.want {
				t.Errorf("Combine = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScript(t *testing.T) {
	s := &Script{Samples: []movement.InputSample{{Jump: true}, {Run: true}}}

	if got := s.Sample(); !got.Jump {
		t.Errorf("first sample = %+v", got)
	}
	if s.Done() {
		t.Error("done after one of two samples")
	}
	s.Sample()
	if !s.Done() {
		t.Error("not done after every sample")
	}
	if got := s.Sample(); !got.Run {
		t.Errorf("exhausted script should repeat the last sample, got %+v", got)
	}

	var empty Script
	if got := empty.Sample(); got != (movement.InputSample{}) {
		t.Errorf("empty script sample = %+v", got)
	}
}

func TestStatic(t *testing.T) {
	var p Provider = Static{Run: true}
	if !p.Sample().Run {
		t.Error("static provider lost its sample")
	}
}

func TestDefaultsBindEveryAction(t *testing.T) {
	for id := netconfig.ActionMoveLeft; id < netconfig.ActionCount; id++ {
		b, ok := Defaults.Bindings[id]
		if !ok || len(b.Keys) == 0 {
			t.Errorf("action %d has no key binding", id)
		}
	}
}
