package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/crakhack/crakhack-web/config"
	"github.com/crakhack/crakhack-web/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(slog.LevelInfo)
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.InitLogger(cfg.SlogLevel())

	logStartupInfo(ctx, logger, &cfg)

	redisClient, err := bootstrap.ConnectRedis(ctx, bootstrap.RedisConnectConfig{
		Redis:  cfg.Redis,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer closeRedis(ctx, redisClient, logger)
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunWithShutdown(ctx, &bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func closeRedis(ctx context.Context, client redis.UniversalClient, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.ErrorContext(ctx, "close redis failed", "error", err)
	}
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting crakhack web",
		"addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev,
		"screener_namespaces", cfg.Screener.Namespaces,
		"screener_configured", cfg.Screener.IsConfigured(),
		"summary_cache", cfg.Redis.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	if !cfg.Screener.IsConfigured() {
		logger.WarnContext(ctx, "SCREENER_PASSWORD is not set; screener pages are locked")
	}
	if missing := bootstrap.MissingAnalyticsVars(cfg); len(missing) > 0 {
		logger.WarnContext(ctx, "analytics settings incomplete; stats endpoints will report errors", "missing", missing)
	}
}
