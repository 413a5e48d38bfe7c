// Command terminal-pet keeps a virtual pet that reacts to your development activity.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	metricsinmem "terminalpet/internal/adapter/metrics/inmemory"
	filerepo "terminalpet/internal/adapter/repo/file"
	gormrepo "terminalpet/internal/adapter/repo/gorm"
	"terminalpet/internal/adapter/repo/memory"
	"terminalpet/internal/cli"
	"terminalpet/internal/platform/config"
	"terminalpet/internal/platform/logging"

	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	deps, closeDeps, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		stop()
		config.Exitf("Error: %v", err)
	}

	code := cli.App{
		Config: cfg,
		Deps:   deps,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}.Run(ctx, os.Args[1:])

	closeDeps()
	stop()
	os.Exit(code)
}

func buildDeps(ctx context.Context, cfg config.Config, logger *log.Logger) (cli.Deps, func(), error) {
	recorder := metricsinmem.NewRecorder()
	noop := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		return cli.Deps{
			StateRepo: memory.NewPetStateRepo(store),
			EventRepo: memory.NewEventRepo(store),
			TxManager: memory.NewTxManager(store),
			Metrics:   recorder,
		}, noop, nil
	case config.StorePostgres:
		db, err := gormrepo.OpenAndMigrate(ctx, cfg.DBDSN)
		if err != nil {
			logging.OrDiscard(logger).Warn("database unavailable, using the state file instead", "err", err)
			return fileDeps(cfg, recorder), noop, nil
		}
		closeDB := func() {
			if err := gormrepo.Close(db); err != nil {
				logger.Warn("close database", "err", err)
			}
		}
		return cli.Deps{
			StateRepo: gormrepo.NewPetStateRepo(db),
			EventRepo: gormrepo.NewEventRepo(db),
			TxManager: gormrepo.NewTxManager(db),
			Metrics:   recorder,
		}, closeDB, nil
	case config.StoreFile, "":
		return fileDeps(cfg, recorder), noop, nil
	default:
		return cli.Deps{}, noop, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}

func fileDeps(cfg config.Config, recorder *metricsinmem.Recorder) cli.Deps {
	return cli.Deps{
		StateRepo: filerepo.NewPetStateRepo(cfg.StatePath()),
		EventRepo: filerepo.NewEventRepo(cfg.EventLogPath()),
		TxManager: filerepo.NewTxManager(),
		Metrics:   recorder,
	}
}
