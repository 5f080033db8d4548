package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/shop-auth-api/config"
)

const shutdownWaitTimeout = 15 * time.Second

// RunConfig contains everything needed to run the HTTP service until a
// shutdown signal arrives.
type RunConfig struct {
	Config     *config.AppConfig
	Components *AuthComponents
	Logger     *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until SIGINT/SIGTERM,
// then stops it gracefully.
func RunWithShutdown(cfg *RunConfig) error {
	if cfg == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := StartHTTPServer(&HTTPServerConfig{
		Config:     cfg.Config,
		Components: cfg.Components,
		Logger:     logger,
	})
	if server == nil {
		return errors.New("http server failed to start")
	}

	return waitForShutdown(server, logger)
}

// waitForShutdown blocks until a termination signal, then stops the server.
func waitForShutdown(server *http.Server, logger *slog.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()
	return ShutdownHTTPServer(ctx, server, logger)
}
