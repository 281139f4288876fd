// Web server for the hotel onboarding wizard using Gin framework.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"hotel-ob/internal/cli"
	"hotel-ob/internal/config"
	"hotel-ob/internal/logging"
	"hotel-ob/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	addr := flag.String("addr", cfg.ListenAddr, "Listen address")
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "Hotel backend API URL")
	flag.StringVar(&cfg.StoreType, "store", cfg.StoreType, "Session store (postgres or memory)")
	flag.Parse()

	logger := logging.New(cfg.LogLevel, cfg.Format(), os.Stderr)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, logger)
	defer app.Close()

	orch, err := app.Orchestrator(ctx)
	if err != nil {
		logger.Fatalw("initializing wizard", "error", err)
	}

	// Use release mode in production
	gin.SetMode(gin.ReleaseMode)

	srv := server.New(orch,
		server.WithLogger(logger.Named("http")),
		server.WithMetrics(app.Metrics.Handler()),
	)

	logger.Infow("starting wizard server", "addr", *addr, "backend", cfg.APIURL, "store", cfg.StoreType)
	if err := srv.Run(ctx, *addr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
