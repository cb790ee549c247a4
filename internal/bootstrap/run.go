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

	"github.com/crakhack/crakhack-web/config"
)

// shutdownWaitTimeout bounds how long in-flight requests get to finish.
const shutdownWaitTimeout = 15 * time.Second

// RunConfig contains configuration for running the web service.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown serves HTTP until ctx ends, SIGINT/SIGTERM arrives, or the
// listener fails, then drains in-flight requests.
func RunWithShutdown(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := BuildHTTPHandler(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	server := NewHTTPServer(cfg.Config.HTTP.Addr, handler)
	errCh := make(chan error, 1)
	StartHTTPServer(server, logger, errCh)

	return waitForShutdown(ctx, shutdownConfig{
		server: server,
		errCh:  errCh,
		logger: logger,
	})
}

type shutdownConfig struct {
	server *http.Server
	errCh  <-chan error
	logger *slog.Logger
}

// waitForShutdown waits for a shutdown signal or a server error.
func waitForShutdown(ctx context.Context, cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		cfg.logger.Info("shutting down", "signal", sig.String())
		return gracefulStop(cfg)
	case <-ctx.Done():
		cfg.logger.Info("shutting down", "reason", ctx.Err())
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func gracefulStop(cfg shutdownConfig) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()
	return ShutdownHTTPServer(shutdownCtx, cfg.server, cfg.logger)
}
