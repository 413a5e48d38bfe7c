// Package cli dispatches terminal-pet verbs to the use cases.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	httpadapter "terminalpet/internal/adapter/http"
	metricsinmem "terminalpet/internal/adapter/metrics/inmemory"
	"terminalpet/internal/adapter/render/terminal"
	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
	"terminalpet/internal/platform/config"
	"terminalpet/internal/platform/logging"

	"github.com/charmbracelet/log"
)

const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUnknownEvent = 2
)

// Deps are the storage collaborators chosen by the entry point.
type Deps struct {
	StateRepo ports.PetStateRepository
	EventRepo ports.EventRepository
	TxManager ports.TxManager
	Metrics   *metricsinmem.Recorder
}

type App struct {
	Config config.Config
	Deps   Deps
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger

	// Optional seams; zero values use the real terminal, server and OS.
	Renderer   ports.Renderer
	Serve      func(ctx context.Context, addr string, h httpadapter.Handler) error
	Executable func() (string, error)
	UserHome   func() (string, error)
	GOOS       string
	Now        func() time.Time
}

// Run executes one verb and returns the process exit code.
func (a App) Run(ctx context.Context, args []string) int {
	verb := "status"
	if len(args) > 0 {
		verb, args = args[0], args[1:]
	}

	var err error
	switch verb {
	case "event":
		err = a.runEvent(ctx, args)
	case "status":
		err = a.runStatus(ctx, args)
	case "pet", "watch":
		err = a.runPet(ctx, args)
	case "history":
		err = a.runHistory(ctx, args)
	case "serve":
		err = a.runServe(ctx, args)
	case "hook-install":
		err = a.runHookInstall(args)
	case "install":
		err = a.runInstall(args)
	case "help", "-h", "-help", "--help":
		a.usage(a.stdout())
		return ExitOK
	default:
		fmt.Fprintf(a.stderr(), "unknown command %q\n", verb)
		a.usage(a.stderr())
		return ExitFailure
	}
	return a.exitCode(err)
}

func (a App) exitCode(err error) int {
	var coded *exitError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.As(err, &coded):
		fmt.Fprintln(a.stderr(), coded.msg)
		return coded.code
	default:
		fmt.Fprintf(a.stderr(), "Error: %v\n", err)
		return ExitFailure
	}
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func (a App) usage(w io.Writer) {
	fmt.Fprintln(w, "usage: terminal-pet <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  event <name>          apply an event ("+strings.Join(pet.EventNames(), ", ")+")")
	fmt.Fprintln(w, "  status [-quiet]       show the pet (default)")
	fmt.Fprintln(w, "  pet [seconds]         redraw the pet until interrupted")
	fmt.Fprintln(w, "  history [-limit N]    list recent events")
	fmt.Fprintln(w, "  serve [-addr A]       accept events over HTTP")
	fmt.Fprintln(w, "  hook-install [-repo]  install the git post-commit hook")
	fmt.Fprintln(w, "  install [-dest PATH]  copy this binary into your bin directory")
}

func (a App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr())
	return fs
}

func (a App) stdout() io.Writer {
	if a.Stdout != nil {
		return a.Stdout
	}
	return os.Stdout
}

func (a App) stderr() io.Writer {
	if a.Stderr != nil {
		return a.Stderr
	}
	return os.Stderr
}

func (a App) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return logging.New(a.stderr(), a.Config.LogLevel)
}

func (a App) renderer() ports.Renderer {
	if a.Renderer != nil {
		return a.Renderer
	}
	return terminal.Renderer{Out: a.stdout(), FrameDelay: a.Config.FrameDelay}
}

func (a App) goos() string {
	if a.GOOS != "" {
		return a.GOOS
	}
	return runtime.GOOS
}

func (a App) userHome() (string, error) {
	if a.UserHome != nil {
		return a.UserHome()
	}
	return os.UserHomeDir()
}

func (a App) executable() (string, error) {
	if a.Executable != nil {
		return a.Executable()
	}
	return os.Executable()
}
