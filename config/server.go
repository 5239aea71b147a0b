package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the dedicated server settings. Values come from
// defaults, then an optional YAML file, then the environment, then flags.
type ServerConfig struct {
	Name       string  `yaml:"name"`
	Port       uint    `yaml:"port"`
	StatusAddr string  `yaml:"statusAddr"`
	TickRate   int     `yaml:"tickRate"`
	Version    string  `yaml:"version"`
	LevelsDir  string  `yaml:"levelsDir"`
	Level      string  `yaml:"level"`
	MaxPlayers int     `yaml:"maxPlayers"`
	DeltaRate  float64 `yaml:"deltaRate"`  // Inbound deltas per second per client
	DeltaBurst int     `yaml:"deltaBurst"` // Burst size for the delta limiter
	Rules      Ruleset `yaml:"rules"`
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Name:       "Jumpsync Server",
		Port:       7373,
		StatusAddr: ":7374",
		TickRate:   Net.TickRate,
		LevelsDir:  "assets",
		MaxPlayers: 10,
		DeltaRate:  120,
		DeltaBurst: 30,
		Rules:      DefaultRules(),
	}
}

// LoadServer reads a YAML file on top of the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func LoadServer(path string) (ServerConfig, error) {
	cfg := DefaultServer()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads a .env file if present and overlays JUMPSYNC_* variables.
func (c *ServerConfig) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("JUMPSYNC_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("JUMPSYNC_LEVEL"); v != "" {
		c.Level = v
	}
	if v := os.Getenv("JUMPSYNC_STATUS_ADDR"); v != "" {
		c.StatusAddr = v
	}
	if p := getEnvInt("JUMPSYNC_PORT", 0); p > 0 {
		c.Port = uint(p)
	}
	if tr := getEnvInt("JUMPSYNC_TICKRATE", 0); tr > 0 {
		c.TickRate = tr
	}
	if mp := getEnvInt("JUMPSYNC_MAX_PLAYERS", 0); mp > 0 {
		c.MaxPlayers = mp
	}
}

// Validate rejects settings the server cannot run with.
func (c ServerConfig) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 240 {
		return fmt.Errorf("tickRate %d out of range", c.TickRate)
	}
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("maxPlayers must be positive")
	}
	if c.DeltaRate <= 0 || c.DeltaBurst <= 0 {
		return fmt.Errorf("delta limiter must be positive")
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
