package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/ports"
)

// unknownFieldSignals are substrings of provider error messages that mean a
// probed field does not exist in the schema.
//
//nolint:gochecknoglobals // static read-only lookup table
var unknownFieldSignals = []string{
	"unknown field",
	"cannot query field",
	"unknown type",
	"does not exist",
}

// probeSpan is the window probed for field existence; any recent span works.
const probeSpan = time.Hour

var (
	_ ports.AnalyticsSource = (*Source)(nil)
	_ ports.StorageSource   = (*Source)(nil)
)

// Source adapts a GraphQL client to the analytics ports.
type Source struct {
	gql    ports.GraphQLClient
	logger *slog.Logger
	now    func() time.Time
}

// SourceOptions groups dependencies for Source.
type SourceOptions struct {
	Client ports.GraphQLClient // required
	Logger *slog.Logger
	Now    func() time.Time
}

// NewSource constructs a Source.
func NewSource(opts SourceOptions) *Source {
	if opts.Client == nil {
		panic("cloudflare.NewSource: Client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Source{gql: opts.Client, logger: logger, now: now}
}

// IntrospectDimensions walks the candidate type names and returns the fields of the
// first one the provider knows. An empty result with a nil error means no type matched.
func (s *Source) IntrospectDimensions(ctx context.Context) ([]string, error) {
	for _, name := range dimensionTypeNames {
		data, err := s.gql.Do(ctx, ports.GraphQLRequest{
			Operation: "introspect",
			Query:     IntrospectionQuery,
			Variables: map[string]any{"name": name},
		})
		if err != nil {
			return nil, fmt.Errorf("introspect %s: %w", name, err)
		}
		fields, err := decodeFieldNames(data)
		if err != nil {
			return nil, fmt.Errorf("introspect %s: %w", name, err)
		}
		if len(fields) > 0 {
			s.logger.DebugContext(ctx, "introspection matched", "type", name, "fields", len(fields))
			return fields, nil
		}
	}
	return nil, nil
}

// ProbeField issues a minimal query selecting field.
func (s *Source) ProbeField(ctx context.Context, zoneID, field string) error {
	query, err := BuildProbeQuery(field)
	if err != nil {
		return apperrors.ValidationField("field", err.Error())
	}
	end := s.now().UTC()
	_, err = s.gql.Do(ctx, ports.GraphQLRequest{
		Operation: "probe",
		Query:     query,
		Variables: map[string]any{
			"zoneTag": zoneID,
			"start":   end.Add(-probeSpan).Format(time.RFC3339),
			"end":     end.Format(time.RFC3339),
		},
	})
	if err == nil {
		return nil
	}
	if isUnknownField(err) {
		return apperrors.SchemaFieldUnsupported(field, err)
	}
	return fmt.Errorf("probe %s: %w", field, err)
}

func isUnknownField(err error) bool {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeUpstreamGraphQL {
		return false
	}
	msg := strings.ToLower(appErr.Message)
	for _, sig := range unknownFieldSignals {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// FetchWindow runs the aggregate query for one chunk.
func (s *Source) FetchWindow(ctx context.Context, q ports.WindowQuery) (analytics.ChunkResult, error) {
	wf := resolveWindowFields(q.Caps, q.SeriesDimension)
	data, err := s.gql.Do(ctx, ports.GraphQLRequest{
		Operation: "window",
		Query:     buildWindowQuery(wf),
		Variables: map[string]any{
			"zoneTag": q.ZoneID,
			"host":    q.Host,
			"start":   q.Window.Start.UTC().Format(time.RFC3339),
			"end":     q.Window.End.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return analytics.ChunkResult{}, err
	}
	return decodeWindow(data, wf)
}

// FetchStorage runs the bucket usage query, including top countries when both
// ZoneID and Host are set.
func (s *Source) FetchStorage(ctx context.Context, q ports.StorageQuery) (analytics.StorageStats, error) {
	includeGeo := q.ZoneID != "" && q.Host != ""
	vars := map[string]any{
		"accountTag": q.AccountID,
		"bucketName": q.BucketName,
		"start":      q.Window.Start.UTC().Format(time.RFC3339),
		"end":        q.Window.End.UTC().Format(time.RFC3339),
	}
	if includeGeo {
		vars["zoneTag"] = q.ZoneID
		vars["host"] = q.Host
	}

	data, err := s.gql.Do(ctx, ports.GraphQLRequest{
		Operation: "storage",
		Query:     BuildStorageQuery(includeGeo),
		Variables: vars,
	})
	if err != nil {
		return analytics.StorageStats{}, err
	}
	stats, err := decodeStorage(data)
	if err != nil {
		return analytics.StorageStats{}, err
	}
	stats.Range = analytics.StorageRange{Start: q.Window.Start.UTC(), End: q.Window.End.UTC()}
	return stats, nil
}
