package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/k1networth/itdesk/internal/deskctl"
	"github.com/k1networth/itdesk/internal/shared/config"
	"github.com/k1networth/itdesk/internal/shared/logger"
	"github.com/k1networth/itdesk/internal/ticket"
)

const appName = "deskctl"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	dbPath := fs.String("db", cfg.Storage.Path, "SQLite database file")
	driver := fs.String("driver", cfg.Storage.Driver, "storage driver: sqlite, postgres or memory")
	verbose := fs.BoolP("verbose", "v", false, "log operations to stderr")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return deskctl.ExitUsage
	}
	cfg.Storage.Path = *dbPath
	cfg.Storage.Driver = *driver

	level := "warn"
	if *verbose {
		level = cfg.LogLevel
	}
	log := logger.NewWriter(os.Stderr, appName, cfg.AppEnv, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := ticket.OpenStore(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open store: %v\n", err)
		return deskctl.ExitFailure
	}
	defer func() { _ = store.Close() }()

	app := &deskctl.App{
		Log:    log,
		Store:  store,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	return app.Run(ctx, fs.Args())
}
