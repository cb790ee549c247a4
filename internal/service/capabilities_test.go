package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/mocks"
)

func newCapabilityCache(t *testing.T) (*mocks.MockAnalyticsSource, *CapabilityCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	src := mocks.NewMockAnalyticsSource(ctrl)
	cache := NewCapabilityCache(CapabilityCacheOptions{
		Source: src,
		Config: CapabilityCacheConfig{ZoneID: "zone-1"},
	})
	return src, cache
}

func TestCapabilityCache_IntrospectionWins(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	src.EXPECT().IntrospectDimensions(gomock.Any()).
		Return([]string{"datetimeHour", "datetimeDay", "clientCountryName", "somethingElse"}, nil).
		Times(1)

	caps, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceIntrospection, caps.Source)
	assert.Equal(t, []string{"clientCountryName", "datetimeDay", "datetimeHour"}, caps.Fields())

	// Memoized: the mock allows exactly one introspection call.
	again, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, caps, again)
	_, settled := cache.cached()
	assert.True(t, settled)
}

func TestCapabilityCache_ProbeAfterIntrospectionFails(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	src.EXPECT().IntrospectDimensions(gomock.Any()).
		Return(nil, apperrors.UpstreamGraphQL("introspection is disabled"))

	supported := map[string]bool{"datetimeHour": true, "datetimeDay": true, "clientCityName": true}
	src.EXPECT().ProbeField(gomock.Any(), "zone-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, field string) error {
			if supported[field] {
				return nil
			}
			return apperrors.SchemaFieldUnsupported(field, nil)
		}).
		Times(len(analytics.CandidateFields()))

	caps, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceProbe, caps.Source)
	assert.Equal(t, []string{"clientCityName", "datetimeDay", "datetimeHour"}, caps.Fields())
}

func TestCapabilityCache_EmptyIntrospectionFallsThroughToProbe(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	src.EXPECT().IntrospectDimensions(gomock.Any()).Return([]string{"unrelated"}, nil)
	src.EXPECT().ProbeField(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).
		Times(len(analytics.CandidateFields()))

	caps, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceProbe, caps.Source)
	assert.Len(t, caps.Fields(), len(analytics.CandidateFields()))
}

func TestCapabilityCache_FallbackWhenEverythingFails(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	src.EXPECT().IntrospectDimensions(gomock.Any()).Return(nil, apperrors.UpstreamHTTP(500, ""))
	// A non-schema error aborts probing at the first field.
	src.EXPECT().ProbeField(gomock.Any(), gomock.Any(), analytics.FieldDatetimeHour).
		Return(apperrors.UpstreamHTTP(500, ""))

	caps, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceFallback, caps.Source)
	assert.Equal(t, []string{analytics.FieldDatetimeDay, analytics.FieldDatetimeHour}, caps.Fields())
	_, settled := cache.cached()
	assert.False(t, settled, "a transport failure must not pin the fallback")
}

func TestCapabilityCache_RetriesAfterTransientFailure(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	gomock.InOrder(
		src.EXPECT().IntrospectDimensions(gomock.Any()).Return(nil, apperrors.UpstreamHTTP(503, "")),
		src.EXPECT().IntrospectDimensions(gomock.Any()).
			Return([]string{"datetimeHour", "datetimeDay", "clientCountryName"}, nil),
	)
	src.EXPECT().ProbeField(gomock.Any(), gomock.Any(), analytics.FieldDatetimeHour).
		Return(apperrors.UpstreamHTTP(503, "")).
		Times(1)

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceFallback, first.Source)

	second, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceIntrospection, second.Source)
	assert.Equal(t, []string{"clientCountryName", "datetimeDay", "datetimeHour"}, second.Fields())

	// Settled now: the mocks allow no further discovery calls.
	third, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestCapabilityCache_SchemaWithoutCandidatesPinsFallback(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	src.EXPECT().IntrospectDimensions(gomock.Any()).
		Return(nil, apperrors.UpstreamGraphQL("introspection is disabled")).
		Times(1)
	src.EXPECT().ProbeField(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, field string) error {
			return apperrors.SchemaFieldUnsupported(field, nil)
		}).
		Times(len(analytics.CandidateFields()))

	caps, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceFallback, caps.Source)

	again, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, caps, again)
}

func TestCapabilityCache_ConcurrentFirstCallersShareDiscovery(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	var calls atomic.Int32
	release := make(chan struct{})
	src.EXPECT().IntrospectDimensions(gomock.Any()).
		DoAndReturn(func(context.Context) ([]string, error) {
			calls.Add(1)
			<-release
			return []string{"datetimeHour"}, nil
		}).
		Times(1)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]analytics.Capabilities, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			caps, err := cache.Get(context.Background())
			assert.NoError(t, err)
			results[i] = caps
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []string{"datetimeHour"}, r.Fields())
	}
}

func TestCapabilityCache_CallerCancellationDoesNotPoisonCache(t *testing.T) {
	t.Parallel()
	src, cache := newCapabilityCache(t)

	release := make(chan struct{})
	src.EXPECT().IntrospectDimensions(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]string, error) {
			<-release
			return []string{"datetimeHour", "clientCountryName"}, ctx.Err()
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.Get(ctx)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCanceled, apperrors.GetCode(err))

	close(release)
	caps, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.SourceIntrospection, caps.Source)
}
