package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/crakhack/crakhack-web/config"
	"github.com/crakhack/crakhack-web/internal/adapters/cloudflare"
	rediscache "github.com/crakhack/crakhack-web/internal/adapters/redis"
	"github.com/crakhack/crakhack-web/internal/domain/access"
	"github.com/crakhack/crakhack-web/internal/observability/metrics"
	"github.com/crakhack/crakhack-web/internal/ports"
	"github.com/crakhack/crakhack-web/internal/service"
)

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	Analytics    *service.AnalyticsService
	Capabilities *service.CapabilityCache
	Storage      *service.StorageStatsService
	Screener     *service.ScreenerService
	Policy       *access.Policy
	Metrics      *metrics.Collector // nil when metrics are disabled
}

// ServiceDeps contains dependencies for creating services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // optional summary cache backend
	Registry    *prometheus.Registry  // optional; defaults to a registry with runtime collectors
	Logger      *slog.Logger
}

// NewServices wires the analytics stack, the screener check and the access policy.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	collector := buildMetrics(cfg.Observability.Metrics, deps.Registry)

	client, err := cloudflare.NewClient(cloudflare.Config{
		Endpoint: cfg.Cloudflare.Endpoint,
		Token:    cfg.Cloudflare.APIToken,
		Timeout:  cfg.Cloudflare.Timeout,
		Logger:   logger,
		Metrics:  collector,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create cloudflare client: %w", err)
	}
	source := cloudflare.NewSource(cloudflare.SourceOptions{Client: client, Logger: logger})

	caps := service.NewCapabilityCache(service.CapabilityCacheOptions{
		Source: source,
		Config: service.CapabilityCacheConfig{ZoneID: cfg.Cloudflare.ZoneID},
		Logger: logger,
	})

	analyticsSvc := service.NewAnalyticsService(service.AnalyticsServiceOptions{
		Source: source,
		Config: service.AnalyticsServiceConfig{
			APIToken:         cfg.Cloudflare.APIToken,
			ZoneID:           cfg.Cloudflare.ZoneID,
			SiteHostname:     cfg.Cloudflare.Hostname,
			ScreenerHostname: cfg.Cloudflare.ScreenerHostname,
			MaxConcurrency:   cfg.Analytics.MaxConcurrency,
			CacheTTL:         cfg.Analytics.CacheTTL,
		},
		Deps: service.AnalyticsServiceDeps{
			Capabilities: caps,
			Cache:        summaryCache(deps.RedisClient, cfg.Redis),
			Logger:       logger,
		},
	})

	storageSvc := service.NewStorageStatsService(service.StorageStatsServiceOptions{
		Source: source,
		Config: service.StorageStatsConfig{
			APIToken:   cfg.Cloudflare.APIToken,
			AccountID:  cfg.Cloudflare.AccountID,
			BucketName: cfg.R2.BucketName,
			ZoneID:     cfg.Cloudflare.ZoneID,
			Hostname:   cfg.Cloudflare.Hostname,
		},
		Logger: logger,
	})

	return ServiceContainer{
		Analytics:    analyticsSvc,
		Capabilities: caps,
		Storage:      storageSvc,
		Screener:     service.NewScreenerService(service.ScreenerServiceOptions{Secret: cfg.Screener.Password, Logger: logger}),
		Policy:       NewAccessPolicy(cfg.Screener),
		Metrics:      collector,
	}, nil
}

// NewAccessPolicy maps screener configuration onto the gate policy.
func NewAccessPolicy(cfg config.ScreenerConfig) *access.Policy {
	return &access.Policy{
		Namespaces:       append([]string(nil), cfg.Namespaces...),
		Hosts:            append([]string(nil), cfg.Hosts...),
		AllowPreviewBots: cfg.AllowPreviewBots,
		SecretConfigured: cfg.IsConfigured(),
	}
}

func buildMetrics(cfg config.ObservabilityMetricsConfig, reg *prometheus.Registry) *metrics.Collector {
	if !cfg.Enabled {
		return nil
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return metrics.New(cfg.Namespace, reg)
}

//nolint:ireturn // a nil port disables summary caching
func summaryCache(client redis.UniversalClient, cfg config.RedisConfig) ports.SummaryCache {
	if client == nil {
		return nil
	}
	return rediscache.NewSummaryCacheWithPrefix(client, cfg.KeyPrefix)
}
