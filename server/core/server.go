package core

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/level"
	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/automoto/jumpsync/shared/netcomponents"
	"github.com/automoto/jumpsync/shared/netsync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"golang.org/x/time/rate"
)

// Server manages the authoritative match and client connections.
type Server struct {
	cfg       config.ServerConfig
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	http      *StatusServer
	started   time.Time

	// Owned by the game loop goroutine.
	match     *match.Match
	gameState donburi.Entity
	pending   match.TickResult
	lastStars map[uint32]int

	// Guarded by mu; router callbacks run on necs goroutines.
	sessions map[*router.NetworkClient]*Session
	commands []command
	mu       sync.Mutex

	snapshot atomic.Pointer[Status]
}

// NewServer creates a server playing lvl.
func NewServer(cfg config.ServerConfig, lvl *level.Level) *Server {
	world := donburi.NewWorld()

	s := &Server{
		cfg:       cfg,
		world:     world,
		started:   time.Now(),
		match:     match.New(lvl, cfg.Rules),
		lastStars: make(map[uint32]int),
		sessions:  make(map[*router.NetworkClient]*Session),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)
	s.http = NewStatusServer(cfg.StatusAddr, s)

	// Set up the world for esync
	srvsync.UseEsync(world)
	s.createGameState()

	// Register router callbacks
	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the configured port
func (s *Server) Start() error {
	// Start game loop
	go s.loop.Run()
	go func() {
		if err := s.http.Start(); err != nil {
			log.Printf("[status] listener stopped: %v", err)
		}
	}()

	// Create and start WebSocket transport
	s.transport = transports.NewWsServerTransport(s.cfg.Port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
	s.http.Stop()
}

// Now returns the server clock: time since start.
func (s *Server) Now() time.Duration {
	return time.Since(s.started)
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, msg messages.PlayerDelta) {
		s.onPlayerDelta(client, msg)
	})

	router.On(func(client *router.NetworkClient, ping messages.Ping) {
		if err := client.SendMessage(messages.Pong{ClientTime: ping.ClientTime, ServerTime: int64(s.Now())}); err != nil {
			log.Printf("[server] pong to %s: %v", client.Id(), err)
		}
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	reject := func(reason string) {
		log.Printf("[server] rejecting %s: %s", client.Id(), reason)
		joinsRejected.WithLabelValues(reason).Inc()
		if err := client.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
			log.Printf("[server] send reject: %v", err)
		}
	}

	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		reject("version mismatch")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.sessions[client]; dup {
		return
	}
	if len(s.sessions) >= s.cfg.MaxPlayers {
		reject("server full")
		return
	}
	sess := &Session{
		client:  client,
		name:    req.PlayerName,
		limiter: rate.NewLimiter(rate.Limit(s.cfg.DeltaRate), s.cfg.DeltaBurst),
	}
	s.sessions[client] = sess
	s.commands = append(s.commands, joinCommand{session: sess})
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	sess, exists := s.sessions[client]
	if exists {
		delete(s.sessions, client)
		s.commands = append(s.commands, leaveCommand{session: sess})
	}
	s.mu.Unlock()
}

func (s *Server) onPlayerDelta(client *router.NetworkClient, msg messages.PlayerDelta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[client]
	if !ok {
		return
	}
	if !sess.limiter.Allow() {
		deltasRejected.WithLabelValues("rate").Inc()
		return
	}
	var delta netsync.NetworkDelta
	if err := delta.UnmarshalBinary(msg.Delta); err != nil {
		deltasRejected.WithLabelValues("malformed").Inc()
		log.Printf("[server] bad delta from %s: %v", client.Id(), err)
		return
	}
	deltasReceived.Inc()
	s.commands = append(s.commands, deltaCommand{session: sess, msg: msg, delta: delta})
}

// ProcessCommands applies everything the router queued since the last tick.
// It runs on the game loop goroutine.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	now := s.Now()
	for _, c := range cmds {
		c.apply(s, now)
	}
}

func (s *Server) createGameState() {
	entity := s.world.Create(netcomponents.NetGameState)
	netcomponents.NetGameState.Set(s.world.Entry(entity), &netcomponents.NetGameStateData{
		Level:      s.match.Level.Name,
		MatchState: netcomponents.MatchStateWaiting,
	})
	if err := srvsync.NetworkSync(s.world, &entity, netcomponents.NetGameState); err != nil {
		log.Printf("[server] failed to sync game state: %v", err)
	}
	s.gameState = entity
}

// Status implements StatusSource. It reads the snapshot the game loop
// published after its last tick.
func (s *Server) Status() Status {
	if st := s.snapshot.Load(); st != nil {
		return *st
	}
	return Status{Name: s.cfg.Name, Level: s.match.Level.Name, Max: s.cfg.MaxPlayers, TickRate: s.cfg.TickRate}
}

func (s *Server) publishStatus() {
	s.snapshot.Store(&Status{
		Name:     s.cfg.Name,
		Level:    s.match.Level.Name,
		Players:  s.match.Len(),
		Max:      s.cfg.MaxPlayers,
		TickRate: s.cfg.TickRate,
		Tick:     s.match.Tick(),
		Uptime:   s.Now().Truncate(time.Second).String(),
	})
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of connected players
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// joinedSessions returns a snapshot of the sessions that own an avatar.
func (s *Server) joinedSessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.joined {
			out = append(out, sess)
		}
	}
	return out
}

// broadcast sends msg to every joined client except skip.
func (s *Server) broadcast(msg any, skip *Session) {
	for _, sess := range s.joinedSessions() {
		if sess == skip {
			continue
		}
		if err := sess.client.SendMessage(msg); err != nil {
			log.Printf("[server] send to %s: %v", sess.client.Id(), err)
		}
	}
}
