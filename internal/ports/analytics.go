package ports

// Package ports defines interfaces (hexagonal ports) for the analytics provider and caches.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
)

// WindowQuery is one grouped query against the provider for a single chunk.
type WindowQuery struct {
	ZoneID string
	Host   string
	Window analytics.Window
	Caps   analytics.Capabilities
	// SeriesDimension picks the time bucket (hour or day) for the series alias.
	SeriesDimension analytics.Dimension
}

// StorageQuery selects the object-storage stats to fetch.
type StorageQuery struct {
	AccountID  string
	BucketName string
	Window     analytics.Window
	// ZoneID and Host enable the optional top-countries query when both are set.
	ZoneID string
	Host   string
}

// AnalyticsSource is the provider-facing port used by the aggregator.
type AnalyticsSource interface {
	// IntrospectDimensions returns the field names of the grouped-dataset dimensions type.
	IntrospectDimensions(ctx context.Context) ([]string, error)

	// ProbeField runs a minimal query selecting field. A nil error means the field exists;
	// an error matching errors.IsSchemaFieldUnsupported means it does not.
	ProbeField(ctx context.Context, zoneID, field string) error

	// FetchWindow runs the aggregate query for one chunk.
	FetchWindow(ctx context.Context, q WindowQuery) (analytics.ChunkResult, error)
}

// StorageSource fetches object-storage usage.
type StorageSource interface {
	FetchStorage(ctx context.Context, q StorageQuery) (analytics.StorageStats, error)
}

// SummaryCache stores rendered summaries keyed by target and window size.
type SummaryCache interface {
	// Get returns the cached summary. ok is false on a miss.
	Get(ctx context.Context, key string) (summary analytics.Summary, ok bool, err error)
	Set(ctx context.Context, key string, summary analytics.Summary, ttl time.Duration) error
}

// GraphQLRequest is one document sent to the provider's GraphQL endpoint.
type GraphQLRequest struct {
	// Operation labels the call in logs and metrics.
	Operation string
	Query     string
	Variables map[string]any
}

// GraphQLClient executes provider queries and returns the decoded `data` member.
// Non-2xx responses and GraphQL `errors` are returned as upstream errors.
type GraphQLClient interface {
	Do(ctx context.Context, req GraphQLRequest) (any, error)
}
