package messages

// PlayerDelta is sent by a client whenever its serializer emits. The
// kinematic snapshot travels next to the packed delta so the receiver can
// reset the avatar before replaying the lag.
type PlayerDelta struct {
	Sequence uint32 // Incrementing ID for prediction reconciliation
	Delta    []byte // netsync.NetworkDelta wire form
	X, Y     float64
	VX, VY   float64
	Powerup  uint8
	SentAt   int64 // Sender's estimate of the server clock (ns)
}

// RemoteDelta is the server's relay of another avatar's PlayerDelta.
type RemoteDelta struct {
	NetworkID uint
	Delta     []byte
	X, Y      float64
	VX, VY    float64
	Powerup   uint8
	SentAt    int64 // Server clock of the original send (ns)
}

// Ping is sent by a client to estimate the server clock.
type Ping struct {
	ClientTime int64
}

// Pong answers a Ping with the server clock at receive time.
type Pong struct {
	ClientTime int64
	ServerTime int64
}
