package messages

import (
	"github.com/automoto/jumpsync/config"
	"github.com/leap-fish/necs/esync"
)

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// ServerTime seeds the client's clock estimate before the first Pong.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ServerName string
	TickRate   int
	Level      string
	ServerTime int64
	X, Y       float64
	Rules      config.Ruleset
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
