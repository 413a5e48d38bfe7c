package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"terminalpet/internal/app/replay"
)

var errUsage = errors.New("usage")

type EventConfig struct {
	Name string
}

var (
	errMissingEvent = fmt.Errorf("%w: missing event name", errUsage)
	errExtraArgs    = fmt.Errorf("%w: event takes exactly one name", errUsage)
)

// ParseEventConfig reads `event <name>`. The verb has no flags, so a
// dash-prefixed word other than -h is taken as a (bad) event name.
func ParseEventConfig(fs *flag.FlagSet, args []string) (EventConfig, error) {
	if len(args) > 0 && strings.HasPrefix(args[0], "-") && !isHelpFlag(args[0]) {
		if len(args) > 1 {
			return EventConfig{}, errExtraArgs
		}
		return EventConfig{Name: args[0]}, nil
	}
	if err := fs.Parse(args); err != nil {
		return EventConfig{}, err
	}
	switch fs.NArg() {
	case 0:
		return EventConfig{}, errMissingEvent
	case 1:
		return EventConfig{Name: strings.TrimSpace(fs.Arg(0))}, nil
	default:
		return EventConfig{}, errExtraArgs
	}
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "-help", "--help":
		return true
	}
	return false
}

type StatusConfig struct {
	Quiet bool
}

func ParseStatusConfig(fs *flag.FlagSet, args []string) (StatusConfig, error) {
	var cfg StatusConfig
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print the state without drawing the pet")
	if err := fs.Parse(args); err != nil {
		return StatusConfig{}, err
	}
	if fs.NArg() != 0 {
		return StatusConfig{}, fmt.Errorf("%w: status [-quiet]", errUsage)
	}
	return cfg, nil
}

type PetConfig struct {
	PollInterval time.Duration
}

// ParsePetConfig accepts the poll interval in whole seconds, either as
// -poll-interval N or as the single positional argument.
func ParsePetConfig(fs *flag.FlagSet, args []string, fallback time.Duration) (PetConfig, error) {
	seconds := int(fallback / time.Second)
	if seconds <= 0 {
		seconds = 5
	}
	fs.IntVar(&seconds, "poll-interval", seconds, "seconds between redraws")
	if err := fs.Parse(args); err != nil {
		return PetConfig{}, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		n, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return PetConfig{}, fmt.Errorf("%w: poll interval %q is not a whole number of seconds", errUsage, fs.Arg(0))
		}
		seconds = n
	default:
		return PetConfig{}, fmt.Errorf("%w: pet [seconds]", errUsage)
	}
	if seconds <= 0 {
		return PetConfig{}, fmt.Errorf("%w: poll interval must be positive", errUsage)
	}
	return PetConfig{PollInterval: time.Duration(seconds) * time.Second}, nil
}

type HistoryConfig struct {
	Limit int
}

func ParseHistoryConfig(fs *flag.FlagSet, args []string) (HistoryConfig, error) {
	cfg := HistoryConfig{Limit: replay.DefaultLimit}
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "number of events to show")
	if err := fs.Parse(args); err != nil {
		return HistoryConfig{}, err
	}
	if cfg.Limit <= 0 {
		return HistoryConfig{}, fmt.Errorf("%w: limit must be positive", errUsage)
	}
	return cfg, nil
}

type ServeConfig struct {
	Addr string
}

func ParseServeConfig(fs *flag.FlagSet, args []string, fallback string) (ServeConfig, error) {
	cfg := ServeConfig{Addr: fallback}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return ServeConfig{}, err
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return ServeConfig{}, fmt.Errorf("%w: -addr is required", errUsage)
	}
	return cfg, nil
}

type HookConfig struct {
	RepoDir string
}

func ParseHookConfig(fs *flag.FlagSet, args []string) (HookConfig, error) {
	cfg := HookConfig{RepoDir: "."}
	fs.StringVar(&cfg.RepoDir, "repo", cfg.RepoDir, "git repository to install the hook into")
	if err := fs.Parse(args); err != nil {
		return HookConfig{}, err
	}
	return cfg, nil
}

type InstallConfig struct {
	Dest string
}

func ParseInstallConfig(fs *flag.FlagSet, args []string, fallback string) (InstallConfig, error) {
	cfg := InstallConfig{Dest: fallback}
	fs.StringVar(&cfg.Dest, "dest", cfg.Dest, "where to copy the binary")
	if err := fs.Parse(args); err != nil {
		return InstallConfig{}, err
	}
	if strings.TrimSpace(cfg.Dest) == "" {
		return InstallConfig{}, fmt.Errorf("%w: -dest is required", errUsage)
	}
	return cfg, nil
}
