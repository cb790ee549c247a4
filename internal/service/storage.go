package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/ports"
)

// StorageStatsConfig holds the bucket coordinates and the optional geo breakdown target.
type StorageStatsConfig struct {
	APIToken   string
	AccountID  string
	BucketName string
	ZoneID     string
	Hostname   string
}

// StorageStatsServiceOptions groups dependencies for StorageStatsService.
type StorageStatsServiceOptions struct {
	Source ports.StorageSource // Required
	Config StorageStatsConfig
	Logger *slog.Logger // Optional
}

// StorageStatsService reports object-storage usage for the configured bucket.
type StorageStatsService struct {
	src    ports.StorageSource
	cfg    StorageStatsConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewStorageStatsService constructs a StorageStatsService.
func NewStorageStatsService(opts StorageStatsServiceOptions) *StorageStatsService {
	if opts.Source == nil {
		panic("NewStorageStatsService: Source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StorageStatsService{
		src:    opts.Source,
		cfg:    opts.Config,
		logger: logger.With("component", "storage_stats"),
		now:    time.Now,
	}
}

// Stats returns usage over the trailing days (clamped to [1, 90]).
func (s *StorageStatsService) Stats(ctx context.Context, days int) (analytics.StorageStats, error) {
	if s.cfg.APIToken == "" || s.cfg.AccountID == "" || s.cfg.BucketName == "" {
		return analytics.StorageStats{}, apperrors.ConfigurationMissing(
			"CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ACCOUNT_ID", "R2_BUCKET_NAME",
		)
	}
	days = clampDays(days)
	window := analytics.LastDays(s.now(), days)

	q := ports.StorageQuery{
		AccountID:  s.cfg.AccountID,
		BucketName: s.cfg.BucketName,
		Window:     window,
	}
	if s.cfg.ZoneID != "" && s.cfg.Hostname != "" {
		q.ZoneID, q.Host = s.cfg.ZoneID, s.cfg.Hostname
	}

	stats, err := s.src.FetchStorage(ctx, q)
	if err != nil {
		return analytics.StorageStats{}, fmt.Errorf("fetch storage stats: %w", err)
	}
	stats.Range = analytics.StorageRange{Start: window.Start, End: window.End, Days: days}
	return stats, nil
}
