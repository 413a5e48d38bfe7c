package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config carries process-wide settings. Verb flags override individual fields.
type Config struct {
	Home         string        `env:"TERMINAL_PET_HOME"`
	Store        string        `env:"TERMINAL_PET_STORE" envDefault:"file"`
	DBDSN        string        `env:"TERMINAL_PET_DB_DSN"`
	PollInterval time.Duration `env:"TERMINAL_PET_POLL_INTERVAL" envDefault:"5s"`
	FrameDelay   time.Duration `env:"TERMINAL_PET_FRAME_DELAY" envDefault:"350ms"`
	LogLevel     string        `env:"TERMINAL_PET_LOG_LEVEL" envDefault:"warn"`
	ServeAddr    string        `env:"TERMINAL_PET_SERVE_ADDR" envDefault:"127.0.0.1:7777"`
	ServeToken   string        `env:"TERMINAL_PET_SERVE_TOKEN"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store == "" {
		cfg.Store = StoreFile
	}
	if strings.TrimSpace(cfg.DBDSN) != "" {
		cfg.Store = StorePostgres
	}
	switch cfg.Store {
	case StoreFile, StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("unsupported store %q", cfg.Store)
	}
	if cfg.Store == StorePostgres && strings.TrimSpace(cfg.DBDSN) == "" {
		return Config{}, fmt.Errorf("store %q requires TERMINAL_PET_DB_DSN", cfg.Store)
	}
	if strings.TrimSpace(cfg.Home) == "" {
		cfg.Home = DefaultHome()
	}
	return cfg, nil
}

// DefaultHome is ~/.terminal-pet, or ./.terminal-pet when no home directory is known.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".terminal-pet")
}

func (c Config) StatePath() string {
	return filepath.Join(c.Home, "pet.json")
}

func (c Config) EventLogPath() string {
	return filepath.Join(c.Home, "events.jsonl")
}
