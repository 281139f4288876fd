package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hotel-ob/internal/cli"
	"hotel-ob/internal/config"
	"hotel-ob/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.LogLevel, cfg.Format(), os.Stderr)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warnw("closing data store", "error", err)
		}
	}()

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
