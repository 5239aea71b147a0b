package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerMissingFile(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg != DefaultServer() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadServerYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte("name: Test\ntickRate: 30\nlevel: playground\nrules:\n  friendlyBumps: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Name != "Test" || cfg.TickRate != 30 || cfg.Level != "playground" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Rules.FriendlyBumps {
		t.Error("friendlyBumps should be overridden")
	}
	if !cfg.Rules.LoopingLevel {
		t.Error("unset rules should keep their defaults")
	}
	if cfg.Port != DefaultServer().Port {
		t.Errorf("port = %d, want default", cfg.Port)
	}
}

func TestLoadServerRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("tickRate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadServer(path); err == nil {
		t.Error("expected a validation error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JUMPSYNC_NAME", "FromEnv")
	t.Setenv("JUMPSYNC_PORT", "9000")
	t.Setenv("JUMPSYNC_TICKRATE", "bogus")

	cfg := DefaultServer()
	cfg.ApplyEnv()
	if cfg.Name != "FromEnv" || cfg.Port != 9000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TickRate != DefaultServer().TickRate {
		t.Errorf("tickRate = %d, bad values must be ignored", cfg.TickRate)
	}
}
