package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/ports"
)

const (
	defaultMaxConcurrency = 8
	summaryTimeout        = 2 * time.Minute
)

// AnalyticsServiceConfig holds credentials and tuning for the aggregator.
type AnalyticsServiceConfig struct {
	APIToken         string
	ZoneID           string
	SiteHostname     string
	ScreenerHostname string
	MaxConcurrency   int
	CacheTTL         time.Duration
}

// AnalyticsServiceDeps groups the optional collaborators.
type AnalyticsServiceDeps struct {
	Capabilities *CapabilityCache   // defaults to a cache over Source
	Cache        ports.SummaryCache // nil disables caching
	Logger       *slog.Logger
	Now          func() time.Time
}

// AnalyticsServiceOptions groups dependencies for AnalyticsService.
type AnalyticsServiceOptions struct {
	Source ports.AnalyticsSource // Required
	Config AnalyticsServiceConfig
	Deps   AnalyticsServiceDeps
}

// AnalyticsService produces traffic summaries for a configured hostname.
type AnalyticsService struct {
	src    ports.AnalyticsSource
	cfg    AnalyticsServiceConfig
	caps   *CapabilityCache
	cache  ports.SummaryCache
	logger *slog.Logger
	now    func() time.Time
	group  singleflight.Group
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(opts AnalyticsServiceOptions) *AnalyticsService {
	if opts.Source == nil {
		panic("NewAnalyticsService: Source is required")
	}
	logger := opts.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Deps.Now
	if now == nil {
		now = time.Now
	}
	cfg := opts.Config
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}
	caps := opts.Deps.Capabilities
	if caps == nil {
		caps = NewCapabilityCache(CapabilityCacheOptions{
			Source: opts.Source,
			Config: CapabilityCacheConfig{ZoneID: cfg.ZoneID},
			Logger: logger,
		})
	}
	return &AnalyticsService{
		src:    opts.Source,
		cfg:    cfg,
		caps:   caps,
		cache:  opts.Deps.Cache,
		logger: logger.With("component", "analytics"),
		now:    now,
	}
}

// Capabilities exposes the discovery cache.
func (s *AnalyticsService) Capabilities(ctx context.Context) (analytics.Capabilities, error) {
	if err := s.checkConfig(analytics.TargetSite, false); err != nil {
		return analytics.Capabilities{}, err
	}
	return s.caps.Get(ctx)
}

// HostFor returns the hostname a target reports on.
func (s *AnalyticsService) HostFor(target analytics.Target) string {
	if target == analytics.TargetScreener {
		return s.cfg.ScreenerHostname
	}
	return s.cfg.SiteHostname
}

// checkConfig fails before any network call when required settings are absent.
func (s *AnalyticsService) checkConfig(target analytics.Target, needHost bool) error {
	var missing []string
	if s.cfg.APIToken == "" {
		missing = append(missing, "CLOUDFLARE_API_TOKEN")
	}
	if s.cfg.ZoneID == "" {
		missing = append(missing, "CLOUDFLARE_ZONE_ID")
	}
	if needHost && s.HostFor(target) == "" {
		if target == analytics.TargetScreener {
			missing = append(missing, "CLOUDFLARE_SCREENER_HOSTNAME")
		} else {
			missing = append(missing, "CLOUDFLARE_HOSTNAME")
		}
	}
	if len(missing) > 0 {
		return apperrors.ConfigurationMissing(missing...)
	}
	return nil
}

// Summary aggregates the trailing 24h and the trailing days-long window for target.
// days outside [1, 90] is clamped. Any chunk failure fails the whole summary.
func (s *AnalyticsService) Summary(ctx context.Context, target analytics.Target, days int) (analytics.Summary, error) {
	if err := s.checkConfig(target, true); err != nil {
		return analytics.Summary{}, err
	}
	days = clampDays(days)
	key := string(target) + ":" + strconv.Itoa(days)

	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		// Shared by every caller waiting on key; detached from any single request.
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), summaryTimeout)
		defer cancel()

		summary, err := s.compute(sctx, target, days)
		if err != nil {
			return nil, err
		}
		s.cacheSet(sctx, key, summary)
		return summary, nil
	})

	select {
	case <-ctx.Done():
		return analytics.Summary{}, apperrors.FromContext(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return analytics.Summary{}, res.Err
		}
		summary, _ := res.Val.(analytics.Summary)
		return summary, nil
	}
}

func clampDays(days int) int {
	switch {
	case days < analytics.MinDays:
		return analytics.DefaultDays
	case days > analytics.MaxDays:
		return analytics.MaxDays
	default:
		return days
	}
}

func (s *AnalyticsService) compute(ctx context.Context, target analytics.Target, days int) (analytics.Summary, error) {
	caps, err := s.caps.Get(ctx)
	if err != nil {
		return analytics.Summary{}, fmt.Errorf("discover capabilities: %w", err)
	}

	now := s.now().UTC()
	host := s.HostFor(target)
	last24h := analytics.Last24h(now)
	window := analytics.LastDays(now, days)
	chunks := window.Chunks(analytics.MaxChunk)

	base := ports.WindowQuery{ZoneID: s.cfg.ZoneID, Host: host, Caps: caps}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)

	var day analytics.ChunkResult
	parts := make([]analytics.ChunkResult, len(chunks))

	g.Go(func() error {
		q := base
		q.Window, q.SeriesDimension = last24h, analytics.DimensionHour
		res, err := s.fetch(gctx, q)
		if err != nil {
			return fmt.Errorf("fetch last 24h: %w", err)
		}
		day = res
		return nil
	})
	for i, chunk := range chunks {
		g.Go(func() error {
			q := base
			q.Window, q.SeriesDimension = chunk, analytics.DimensionDay
			res, err := s.fetch(gctx, q)
			if err != nil {
				return fmt.Errorf("fetch chunk %d/%d: %w", i+1, len(chunks), err)
			}
			parts[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "analytics aggregation failed",
			"target", target, "days", days, "error", err)
		return analytics.Summary{}, err
	}

	merged := analytics.Merge(parts)
	summary := analytics.Summary{
		Target: target,
		Host:   host,
		Range: analytics.Range{
			Start24h:    last24h.Start,
			StartWindow: window.Start,
			End:         now,
			Days:        days,
			Chunks:      len(chunks),
		},
		Totals24h:        day.Totals,
		TotalsWindow:     merged.Totals,
		Series24h:        analytics.MergeSeries(day.Series),
		SeriesWindow:     merged.Series,
		Countries:        merged.Countries,
		Cities:           merged.Cities,
		Browsers:         merged.Browsers,
		OperatingSystems: merged.OperatingSystems,
		Capabilities:     caps.Fields(),
		CapabilitySource: caps.Source,
		GeneratedAt:      now,
	}
	summary.Normalize()
	return summary, nil
}

// fetch skips the call when a sibling has already failed.
func (s *AnalyticsService) fetch(ctx context.Context, q ports.WindowQuery) (analytics.ChunkResult, error) {
	if err := ctx.Err(); err != nil {
		return analytics.ChunkResult{}, apperrors.FromContext(err)
	}
	return s.src.FetchWindow(ctx, q)
}

func (s *AnalyticsService) cacheGet(ctx context.Context, key string) (analytics.Summary, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return analytics.Summary{}, false
	}
	summary, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "summary cache read failed", "key", key, "error", err)
		return analytics.Summary{}, false
	}
	return summary, ok
}

func (s *AnalyticsService) cacheSet(ctx context.Context, key string, summary analytics.Summary) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, summary, s.cfg.CacheTTL); err != nil {
		s.logger.WarnContext(ctx, "summary cache write failed", "key", key, "error", err)
	}
}
