package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/crakhack/crakhack-web/config"
)

// InitLogger initializes the structured logger and installs it as the default.
func InitLogger(level slog.Leveler) *slog.Logger {
	if level == nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// MissingAnalyticsVars lists the unset variables the analytics endpoints need.
// The server still starts; the endpoints report the gap per request.
func MissingAnalyticsVars(cfg *config.AppConfig) []string {
	if cfg == nil {
		return nil
	}
	var missing []string
	if cfg.Cloudflare.APIToken == "" {
		missing = append(missing, "CLOUDFLARE_API_TOKEN")
	}
	if cfg.Cloudflare.ZoneID == "" {
		missing = append(missing, "CLOUDFLARE_ZONE_ID")
	}
	if cfg.Cloudflare.Hostname == "" {
		missing = append(missing, "CLOUDFLARE_HOSTNAME")
	}
	if cfg.Cloudflare.AccountID == "" {
		missing = append(missing, "CLOUDFLARE_ACCOUNT_ID")
	}
	if cfg.R2.BucketName == "" {
		missing = append(missing, "R2_BUCKET_NAME")
	}
	return missing
}
