package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TERMINAL_PET_HOME", "")
	t.Setenv("TERMINAL_PET_STORE", "")
	t.Setenv("TERMINAL_PET_DB_DSN", "")
	t.Setenv("HOME", "/home/pet")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreFile {
		t.Fatalf("expected file store, got %q", cfg.Store)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("expected 5s poll interval, got %s", cfg.PollInterval)
	}
	if cfg.FrameDelay != 350*time.Millisecond {
		t.Fatalf("expected 350ms frame delay, got %s", cfg.FrameDelay)
	}
	if got, want := cfg.StatePath(), filepath.Join("/home/pet", ".terminal-pet", "pet.json"); got != want {
		t.Fatalf("state path mismatch: got=%q want=%q", got, want)
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("TERMINAL_PET_HOME", "/tmp/pet-home")
	t.Setenv("TERMINAL_PET_STORE", "Memory")
	t.Setenv("TERMINAL_PET_DB_DSN", "")
	t.Setenv("TERMINAL_PET_POLL_INTERVAL", "2s")
	t.Setenv("TERMINAL_PET_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreMemory {
		t.Fatalf("expected memory store, got %q", cfg.Store)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("expected 2s, got %s", cfg.PollInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.LogLevel)
	}
	if got, want := cfg.EventLogPath(), filepath.Join("/tmp/pet-home", "events.jsonl"); got != want {
		t.Fatalf("event log path mismatch: got=%q want=%q", got, want)
	}
}

func TestLoadDSNSelectsPostgres(t *testing.T) {
	t.Setenv("TERMINAL_PET_STORE", "file")
	t.Setenv("TERMINAL_PET_DB_DSN", "postgres://pet@localhost/pet")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StorePostgres {
		t.Fatalf("expected postgres store, got %q", cfg.Store)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("TERMINAL_PET_STORE", "redis")
	t.Setenv("TERMINAL_PET_DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported store")
	}
}

func TestLoadRejectsPostgresWithoutDSN(t *testing.T) {
	t.Setenv("TERMINAL_PET_STORE", "postgres")
	t.Setenv("TERMINAL_PET_DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when postgres has no dsn")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TERMINAL_PET_STORE", "")
	t.Setenv("TERMINAL_PET_DB_DSN", "")
	t.Setenv("TERMINAL_PET_POLL_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
