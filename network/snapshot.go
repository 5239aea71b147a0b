package network

import (
	"log"

	"github.com/automoto/jumpsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// EntityState is one decoded entity of a world snapshot. Components the
// entity does not carry are nil.
type EntityState struct {
	ID       esync.NetworkId
	Position *netcomponents.NetPositionData
	Velocity *netcomponents.NetVelocityData
	Player   *netcomponents.NetPlayerStateData
	Game     *netcomponents.NetGameStateData
}

// DecodeSnapshot deserializes every synced component of snapshot.
// Components that fail to decode are skipped.
func DecodeSnapshot(snapshot esync.WorldSnapshot) []EntityState {
	out := make([]EntityState, 0, len(snapshot))
	for _, ent := range snapshot {
		es := EntityState{ID: ent.Id}
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				log.Printf("[client] entity %d: %v", ent.Id, err)
				continue
			}
			es.set(instance)
		}
		out = append(out, es)
	}
	return out
}

func (es *EntityState) set(data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		es.Position = &v
	case netcomponents.NetVelocityData:
		es.Velocity = &v
	case netcomponents.NetPlayerStateData:
		es.Player = &v
	case netcomponents.NetGameStateData:
		es.Game = &v
	}
}
