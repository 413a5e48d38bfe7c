package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	httpadapter "terminalpet/internal/adapter/http"
	"terminalpet/internal/adapter/hooks"
	"terminalpet/internal/adapter/selfinstall"
	"terminalpet/internal/app/auth"
	"terminalpet/internal/app/feed"
	"terminalpet/internal/app/replay"
	"terminalpet/internal/app/status"
	"terminalpet/internal/app/watch"
	"terminalpet/internal/domain/pet"
)

const shutdownTimeout = 5 * time.Second

var ErrNotGitRepo = errors.New("not a git repository")

func (a App) runEvent(ctx context.Context, args []string) error {
	cfg, err := ParseEventConfig(a.newFlagSet("event"), args)
	switch {
	case errors.Is(err, errMissingEvent):
		return unknownEvent("")
	case errors.Is(err, errExtraArgs):
		return &exitError{code: ExitUnknownEvent, msg: fmt.Sprintf("event takes exactly one name, got %d arguments: %s", len(args), strings.Join(args, " "))}
	case err != nil:
		return err
	}
	if cfg.Name == "" {
		return unknownEvent("")
	}

	resp, err := a.feedUseCase().Execute(ctx, feed.Request{EventName: cfg.Name})
	if errors.Is(err, pet.ErrUnknownEvent) {
		return unknownEvent(cfg.Name)
	}
	if err != nil {
		return err
	}

	if resp.SaveErr != nil {
		fmt.Fprintf(a.stderr(), "warning: pet state not saved: %v\n", resp.SaveErr)
	}
	if resp.HistoryErr != nil {
		fmt.Fprintf(a.stderr(), "warning: event history not updated: %v\n", resp.HistoryErr)
	}
	fmt.Fprintf(a.stdout(), "%s: %s\n", resp.Event, formatState(resp.State))
	return nil
}

func unknownEvent(name string) error {
	msg := fmt.Sprintf("unknown event %q; expected one of: %s", name, strings.Join(pet.EventNames(), ", "))
	if name == "" {
		msg = "missing event name; expected one of: " + strings.Join(pet.EventNames(), ", ")
	}
	return &exitError{code: ExitUnknownEvent, msg: msg}
}

func (a App) feedUseCase() feed.UseCase {
	uc := feed.UseCase{
		TxManager: a.Deps.TxManager,
		StateRepo: a.Deps.StateRepo,
		EventRepo: a.Deps.EventRepo,
		Logger:    a.logger(),
		Now:       a.Now,
	}
	if a.Deps.Metrics != nil {
		uc.Metrics = a.Deps.Metrics
	}
	return uc
}

func (a App) runStatus(ctx context.Context, args []string) error {
	cfg, err := ParseStatusConfig(a.newFlagSet("status"), args)
	if err != nil {
		return err
	}

	resp, err := status.UseCase{StateRepo: a.Deps.StateRepo, Logger: a.logger()}.Execute(ctx, status.Request{})
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		if err := a.renderer().Render(ctx, resp.State.Mood); err != nil && ctx.Err() == nil {
			a.logger().Warn("render pet", "err", err)
		}
	}
	line := formatState(resp.State)
	if !resp.Persisted {
		line += " (new pet, nothing saved yet)"
	}
	fmt.Fprintln(a.stdout(), line)
	return nil
}

func (a App) runPet(ctx context.Context, args []string) error {
	cfg, err := ParsePetConfig(a.newFlagSet("pet"), args, a.Config.PollInterval)
	if err != nil {
		return err
	}

	loop := &watch.Loop{
		StateRepo: a.Deps.StateRepo,
		Renderer:  a.renderer(),
		Interval:  cfg.PollInterval,
		Logger:    a.logger(),
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			loop.Stop()
		case <-finished:
		}
	}()

	return loop.Run(ctx)
}

func (a App) runHistory(ctx context.Context, args []string) error {
	cfg, err := ParseHistoryConfig(a.newFlagSet("history"), args)
	if err != nil {
		return err
	}

	resp, err := replay.UseCase{Events: a.Deps.EventRepo}.Execute(ctx, replay.Request{Limit: cfg.Limit})
	if err != nil {
		return err
	}
	if len(resp.Events) == 0 {
		fmt.Fprintln(a.stdout(), "no events recorded yet")
		return nil
	}
	for _, record := range resp.Events {
		fmt.Fprintf(a.stdout(), "%s  %-15s %s -> %s  xp=%d level=%d\n",
			record.OccurredAt.Local().Format(time.DateTime),
			record.Event,
			record.Before.Mood,
			record.After.Mood,
			record.After.XP,
			record.After.Level,
		)
	}
	return nil
}

func (a App) runServe(ctx context.Context, args []string) error {
	cfg, err := ParseServeConfig(a.newFlagSet("serve"), args, a.Config.ServeAddr)
	if err != nil {
		return err
	}

	h := httpadapter.Handler{
		AuthUC:   auth.VerifyUseCase{Token: a.Config.ServeToken},
		FeedUC:   a.feedUseCase(),
		StatusUC: status.UseCase{StateRepo: a.Deps.StateRepo, Logger: a.logger()},
		ReplayUC: replay.UseCase{Events: a.Deps.EventRepo},
	}
	if a.Deps.Metrics != nil {
		h.KPI = a.Deps.Metrics
	}

	serve := a.Serve
	if serve == nil {
		serve = serveHertz
	}
	a.logger().Info("serving pet events", "addr", cfg.Addr, "token", h.AuthUC.Enabled())
	return serve(ctx, cfg.Addr, h)
}

func serveHertz(ctx context.Context, addr string, h httpadapter.Handler) error {
	s := httpadapter.NewServer(addr, h)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (a App) runHookInstall(args []string) error {
	cfg, err := ParseHookConfig(a.newFlagSet("hook-install"), args)
	if err != nil {
		return err
	}
	info, err := os.Stat(filepath.Join(cfg.RepoDir, ".git"))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotGitRepo, cfg.RepoDir)
	}

	binary := ""
	if dest, err := a.defaultDestination(); err == nil && selfinstall.Installed(dest) {
		binary = dest
	}
	installed, err := hooks.InstallPostCommit(cfg.RepoDir, binary)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout(), "installed %s\ninstalled %s\n", installed.Unix, installed.Windows)
	return nil
}

func (a App) runInstall(args []string) error {
	fallback, err := a.defaultDestination()
	if err != nil {
		a.logger().Debug("default install destination", "err", err)
	}
	cfg, err := ParseInstallConfig(a.newFlagSet("install"), args, fallback)
	if err != nil {
		return err
	}

	src, err := a.executable()
	if err != nil {
		return fmt.Errorf("locate running binary: %w", err)
	}
	if err := selfinstall.Install(src, cfg.Dest); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout(), "installed terminal-pet to %s\n", cfg.Dest)
	return nil
}

func (a App) defaultDestination() (string, error) {
	home, err := a.userHome()
	if err != nil {
		return "", fmt.Errorf("%w: %v", selfinstall.ErrNoHome, err)
	}
	return selfinstall.DefaultDestination(home, a.goos())
}

func formatState(s pet.State) string {
	return fmt.Sprintf("mood=%s energy=%d xp=%d level=%d", s.Mood, s.Energy, s.XP, s.Level)
}
