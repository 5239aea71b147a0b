package core

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the public summary served on /status.
type Status struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Players  int    `json:"players"`
	Max      int    `json:"maxPlayers"`
	TickRate int    `json:"tickRate"`
	Tick     uint64 `json:"tick"`
	Uptime   string `json:"uptime"`
}

// StatusSource provides the data behind the status endpoints.
type StatusSource interface {
	Status() Status
}

// NewStatusRouter builds the status HTTP handler. It has no side effects,
// so tests can mount it on httptest.
func NewStatusRouter(src StatusSource) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, src.Status())
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[status] encode: %v", err)
	}
}

// StatusServer serves the status router on its own listener.
type StatusServer struct {
	srv *http.Server
}

func NewStatusServer(addr string, src StatusSource) *StatusServer {
	return &StatusServer{srv: &http.Server{
		Addr:              addr,
		Handler:           NewStatusRouter(src),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start blocks until the listener fails or Stop is called.
func (s *StatusServer) Start() error {
	if s.srv.Addr == "" {
		return nil
	}
	log.Printf("[status] listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *StatusServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Printf("[status] shutdown: %v", err)
	}
}
