package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/server/core"
	"github.com/automoto/jumpsync/shared/protocol"
)

func main() {
	configPath := flag.String("config", "server.yaml", "YAML config file (optional)")
	port := flag.Uint("port", 0, "Server port")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (updates per second)")
	name := flag.String("name", "", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	levelName := flag.String("level", "", "Level to host (default: first level found)")
	statusAddr := flag.String("status", "", "Status/metrics listen address")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()

	// Flags win over file and environment, but only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "tickrate":
			cfg.TickRate = *tickRate
		case "name":
			cfg.Name = *name
		case "version":
			cfg.Version = *version
		case "level":
			cfg.Level = *levelName
		case "status":
			cfg.StatusAddr = *statusAddr
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	lvl, err := core.LoadLevel(cfg.LevelsDir, cfg.Level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	server := core.NewServer(cfg, lvl)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting jumpsync server %q on port %d (tick rate: %d/s, level: %s, version: %s)",
		cfg.Name, cfg.Port, cfg.TickRate, lvl.Name, cfg.Version)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
