// Command mapchat is a terminal client for the disaster-reporting map
// assistant. It runs against the in-memory gateway and map view, which is
// enough to try the full conversation and map-command flow locally.
//
// Flags:
//
//	-state string      Path to the client state file (default: ~/.mapchat/state.json)
//	-ephemeral         Keep client state in memory only
//	-log-level string  Log level: debug, info, warn, error (default: warn)
//	-log-file string   Path to the log file (default: discard logs)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fieldreport/mapchat"
	"github.com/fieldreport/mapchat/localstore"
	"github.com/fieldreport/mapchat/mapcmd"
	"github.com/fieldreport/mapchat/mem"
	"github.com/fieldreport/mapchat/session"
	"github.com/fieldreport/mapchat/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mapchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		statePath = flag.String("state", "", "Path to the client state file")
		ephemeral = flag.Bool("ephemeral", false, "Keep client state in memory only")
		logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		logFile   = flag.String("log-file", "", "Path to the log file")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog, err := newLogger(*logLevel, *logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	storage, err := newStorage(*statePath, *ephemeral)
	if err != nil {
		return err
	}

	gateway := mem.NewGateway()
	view := mem.NewMapView()
	executor := mapcmd.NewExecutor(mapcmd.WithLogger(logger.With("component", "mapcmd")))

	manager := session.NewManager(gateway, storage,
		session.WithLogger(logger.With("component", "session")),
		session.WithExecutor(executor, view),
	)
	manager.Initialize(ctx)

	if err := tui.Run(ctx, tui.New(manager, view)); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// newLogger builds the client logger. TUI output owns the terminal, so logs
// go to a file or nowhere.
func newLogger(level, path string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, closeLog, nil
}

func newStorage(statePath string, ephemeral bool) (mapchat.Storage, error) {
	if ephemeral {
		return localstore.NewMemory(), nil
	}
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return localstore.NewMemory(), nil
		}
		statePath = filepath.Join(home, ".mapchat", "state.json")
	}
	f, err := localstore.NewFile(statePath)
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}
	return f, nil
}
