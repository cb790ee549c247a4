package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/ports"
)

const defaultDiscoveryTimeout = 30 * time.Second

// errNoCapabilities marks a discovery method that ran but found no usable fields.
var errNoCapabilities = errors.New("no candidate fields found")

// CapabilityCacheConfig holds discovery settings.
type CapabilityCacheConfig struct {
	ZoneID  string
	Timeout time.Duration
}

// CapabilityCacheOptions groups dependencies for CapabilityCache.
type CapabilityCacheOptions struct {
	Source ports.AnalyticsSource // Required
	Config CapabilityCacheConfig
	Logger *slog.Logger // Optional
}

// CapabilityCache discovers the provider's supported dimension fields once and
// memoizes the result for its own lifetime. Concurrent first callers share one
// discovery run. There is no invalidation; a schema change needs a new cache.
// A run cut short by a transport or upstream failure serves the fallback set
// without memoizing it, so the next caller tries again.
type CapabilityCache struct {
	src     ports.AnalyticsSource
	zoneID  string
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	done  bool
	caps  analytics.Capabilities
	group singleflight.Group
}

// NewCapabilityCache constructs a CapabilityCache.
func NewCapabilityCache(opts CapabilityCacheOptions) *CapabilityCache {
	if opts.Source == nil {
		panic("NewCapabilityCache: Source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Config.Timeout
	if timeout <= 0 {
		timeout = defaultDiscoveryTimeout
	}
	return &CapabilityCache{
		src:     opts.Source,
		zoneID:  opts.Config.ZoneID,
		timeout: timeout,
		logger:  logger.With("component", "capability_cache"),
	}
}

// Get returns the memoized capabilities, running discovery until one run settles.
// Discovery itself never fails; it degrades to the fallback set. The only error
// is the caller's own context ending while waiting.
func (c *CapabilityCache) Get(ctx context.Context) (analytics.Capabilities, error) {
	if caps, ok := c.cached(); ok {
		return caps, nil
	}

	ch := c.group.DoChan("discover", func() (any, error) {
		if caps, ok := c.cached(); ok {
			return caps, nil
		}
		// Detached so one caller going away does not poison the shared run.
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		caps, settled := c.discover(dctx)
		if settled {
			c.mu.Lock()
			c.caps, c.done = caps, true
			c.mu.Unlock()
		}
		return caps, nil
	})

	select {
	case <-ctx.Done():
		return analytics.Capabilities{}, apperrors.FromContext(ctx.Err())
	case res := <-ch:
		caps, _ := res.Val.(analytics.Capabilities)
		return caps, nil
	}
}

func (c *CapabilityCache) cached() (analytics.Capabilities, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps, c.done
}

// discover reports settled=false when probing stopped on a non-schema error;
// the fallback it returns then is only good for the current call.
func (c *CapabilityCache) discover(ctx context.Context) (caps analytics.Capabilities, settled bool) {
	caps, err := c.introspect(ctx)
	if err == nil {
		c.logger.InfoContext(ctx, "capabilities discovered",
			"source", caps.Source, "fields", caps.Fields())
		return caps, true
	}
	c.logger.WarnContext(ctx, "introspection failed, probing fields", "error", err)

	caps, err = c.probe(ctx)
	if err == nil {
		c.logger.InfoContext(ctx, "capabilities discovered",
			"source", caps.Source, "fields", caps.Fields())
		return caps, true
	}

	if errors.Is(err, errNoCapabilities) {
		c.logger.WarnContext(ctx, "no candidate fields exist, using fallback", "error", err)
		return analytics.FallbackCapabilities(), true
	}
	c.logger.WarnContext(ctx, "field probing failed, using fallback until the next attempt", "error", err)
	return analytics.FallbackCapabilities(), false
}

func (c *CapabilityCache) introspect(ctx context.Context) (analytics.Capabilities, error) {
	fields, err := c.src.IntrospectDimensions(ctx)
	if err != nil {
		return analytics.Capabilities{}, fmt.Errorf("introspect dimensions: %w", err)
	}
	caps := analytics.NewCapabilities(analytics.SourceIntrospection, fields)
	if caps.Empty() {
		return analytics.Capabilities{}, fmt.Errorf("introspect dimensions: %w", errNoCapabilities)
	}
	return caps, nil
}

func (c *CapabilityCache) probe(ctx context.Context) (analytics.Capabilities, error) {
	var supported []string
	for _, field := range analytics.CandidateFields() {
		err := c.src.ProbeField(ctx, c.zoneID, field)
		switch {
		case err == nil:
			supported = append(supported, field)
		case apperrors.IsSchemaFieldUnsupported(err):
			c.logger.DebugContext(ctx, "field unsupported", "field", field)
		default:
			return analytics.Capabilities{}, fmt.Errorf("probe %s: %w", field, err)
		}
	}
	caps := analytics.NewCapabilities(analytics.SourceProbe, supported)
	if caps.Empty() {
		return analytics.Capabilities{}, fmt.Errorf("probe fields: %w", errNoCapabilities)
	}
	return caps, nil
}
