package network

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

var stateNames = [...]string{
	StateDisconnected: "disconnected",
	StateConnecting:   "connecting",
	StateConnected:    "connected",
	StateJoinedGame:   "joined",
	StateError:        "error",
}

func (s ClientState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	serverName string
	tickRate   int
	level      string
	spawn      gamemath.Vector
	rules      config.Ruleset
	conn       *websocket.Conn

	clock *Clock

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
	starsCh    chan messages.StarsUpdateEvent

	deltaCh     chan messages.RemoteDelta
	tileCh      chan messages.TileEvent
	collisionCh chan messages.CollisionEvent
	movementCh  chan messages.MovementEvent
	spawnCh     chan messages.SpawnEvent
	despawnCh   chan messages.DespawnEvent
}

func NewClient() *Client {
	return &Client{
		state:       StateDisconnected,
		rules:       config.DefaultRules(),
		clock:       NewClock(),
		snapshotCh:  make(chan esync.WorldSnapshot, 1),
		starsCh:     make(chan messages.StarsUpdateEvent, 1),
		deltaCh:     make(chan messages.RemoteDelta, 64),
		tileCh:      make(chan messages.TileEvent, 64),
		collisionCh: make(chan messages.CollisionEvent, 16),
		movementCh:  make(chan messages.MovementEvent, 64),
		spawnCh:     make(chan messages.SpawnEvent, 8),
		despawnCh:   make(chan messages.DespawnEvent, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s tickRate=%d level=%s",
			msg.NetworkID, msg.ServerName, msg.TickRate, msg.Level)
		c.clock.Reset(time.Duration(msg.ServerTime), c.clock.Local())
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.level = msg.Level
		c.spawn = gamemath.Vector{X: msg.X, Y: msg.Y}
		c.rules = msg.Rules
		c.state = StateJoinedGame
		c.mu.Unlock()
		c.Ping()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.Pong) {
		c.clock.Observe(time.Duration(msg.ClientTime), time.Duration(msg.ServerTime), c.clock.Local())
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		pushLatest(c.snapshotCh, snapshot)
	})

	router.On(func(_ *router.NetworkClient, evt messages.StarsUpdateEvent) {
		pushLatest(c.starsCh, evt)
	})

	router.On(func(_ *router.NetworkClient, msg messages.RemoteDelta) {
		push(c.deltaCh, msg)
	})

	router.On(func(_ *router.NetworkClient, evt messages.TileEvent) {
		push(c.tileCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.CollisionEvent) {
		push(c.collisionCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.MovementEvent) {
		push(c.movementCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.SpawnEvent) {
		push(c.spawnCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.DespawnEvent) {
		push(c.despawnCh, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

// Ping asks the server for its clock.
func (c *Client) Ping() {
	if err := c.SendMessage(messages.Ping{ClientTime: int64(c.clock.Local())}); err != nil {
		log.Printf("[client] ping: %v", err)
	}
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) Level() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Spawn returns where the server placed the local avatar.
func (c *Client) Spawn() gamemath.Vector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spawn
}

// Rules returns the server's ruleset.
func (c *Client) Rules() config.Ruleset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rules
}

// Clock returns the server clock estimate.
func (c *Client) Clock() *Clock {
	return c.clock
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// LatestStars returns the most recent star counts, or nil. Non-blocking.
func (c *Client) LatestStars() map[uint]int {
	select {
	case evt := <-c.starsCh:
		return evt.Stars
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainRemoteDeltas returns all pending remote deltas, non-blocking.
func (c *Client) DrainRemoteDeltas() []messages.RemoteDelta {
	return drainChan(c.deltaCh)
}

// DrainTileEvents returns all pending tile events, non-blocking.
func (c *Client) DrainTileEvents() []messages.TileEvent {
	return drainChan(c.tileCh)
}

// DrainCollisionEvents returns all pending collision events, non-blocking.
func (c *Client) DrainCollisionEvents() []messages.CollisionEvent {
	return drainChan(c.collisionCh)
}

// DrainMovementEvents returns all pending movement events, non-blocking.
func (c *Client) DrainMovementEvents() []messages.MovementEvent {
	return drainChan(c.movementCh)
}

// DrainSpawnEvents returns all pending spawn events, non-blocking.
func (c *Client) DrainSpawnEvents() []messages.SpawnEvent {
	return drainChan(c.spawnCh)
}

// DrainDespawnEvents returns all pending despawn events, non-blocking.
func (c *Client) DrainDespawnEvents() []messages.DespawnEvent {
	return drainChan(c.despawnCh)
}

// push drops the event when the buffer is full rather than stall the router.
func push[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

// pushLatest replaces whatever is buffered with v.
func pushLatest[T any](ch chan T, v T) {
	select { // drain stale, push latest
	case <-ch:
	default:
	}
	push(ch, v)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
