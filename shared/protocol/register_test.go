package protocol

import (
	"reflect"
	"testing"

	"github.com/automoto/jumpsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

func TestRegisterComponents(t *testing.T) {
	if err := RegisterComponents(); err != nil {
		t.Fatalf("RegisterComponents: %v", err)
	}

	tests := []struct {
		id   uint
		data any
	}{
		{SyncIDNetPosition, netcomponents.NetPositionData{}},
		{SyncIDNetVelocity, netcomponents.NetVelocityData{}},
		{SyncIDNetPlayerState, netcomponents.NetPlayerStateData{}},
		{SyncIDNetGameState, netcomponents.NetGameStateData{}},
	}
	for _, tt := range tests {
		if id := esync.Mapper.LookupId(reflect.TypeOf(tt.data)); id != tt.id {
			t.Errorf("%T id = %d, want %d", tt.data, id, tt.id)
		}
	}

	if err := RegisterComponents(); err == nil {
		t.Error("registering the same IDs twice succeeded")
	}
}
