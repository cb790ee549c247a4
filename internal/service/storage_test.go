package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/mocks"
	"github.com/crakhack/crakhack-web/internal/ports"
)

func newStorageService(t *testing.T, cfg StorageStatsConfig) (*mocks.MockStorageSource, *StorageStatsService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	src := mocks.NewMockStorageSource(ctrl)
	return src, NewStorageStatsService(StorageStatsServiceOptions{Source: src, Config: cfg})
}

func TestStorageStatsService_MissingConfig(t *testing.T) {
	t.Parallel()
	_, svc := newStorageService(t, StorageStatsConfig{APIToken: "tok", AccountID: "acct"})

	_, err := svc.Stats(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigurationMissing(err))
	assert.Equal(t, "CLOUDFLARE_API_TOKEN,CLOUDFLARE_ACCOUNT_ID,R2_BUCKET_NAME", apperrors.GetField(err))
}

func TestStorageStatsService_Stats(t *testing.T) {
	t.Parallel()
	src, svc := newStorageService(t, StorageStatsConfig{
		APIToken: "tok", AccountID: "acct", BucketName: "media",
		ZoneID: "zone-1", Hostname: "crakhack.com",
	})

	src.EXPECT().FetchStorage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ports.StorageQuery) (analytics.StorageStats, error) {
			assert.Equal(t, "acct", q.AccountID)
			assert.Equal(t, "media", q.BucketName)
			assert.Equal(t, "zone-1", q.ZoneID)
			assert.Equal(t, "crakhack.com", q.Host)
			assert.Equal(t, 30*24*time.Hour, q.Window.Duration())
			return analytics.StorageStats{Totals: analytics.StorageTotals{Requests: 5}}, nil
		})

	stats, err := svc.Stats(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Totals.Requests)
	assert.Equal(t, 30, stats.Range.Days)
}

func TestStorageStatsService_GeoNeedsZoneAndHost(t *testing.T) {
	t.Parallel()
	src, svc := newStorageService(t, StorageStatsConfig{
		APIToken: "tok", AccountID: "acct", BucketName: "media", ZoneID: "zone-1",
	})

	src.EXPECT().FetchStorage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ports.StorageQuery) (analytics.StorageStats, error) {
			assert.Empty(t, q.ZoneID)
			assert.Empty(t, q.Host)
			return analytics.StorageStats{}, nil
		})

	stats, err := svc.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultDays, stats.Range.Days)
}

func TestStorageStatsService_UpstreamError(t *testing.T) {
	t.Parallel()
	src, svc := newStorageService(t, StorageStatsConfig{APIToken: "tok", AccountID: "acct", BucketName: "media"})
	src.EXPECT().FetchStorage(gomock.Any(), gomock.Any()).Return(analytics.StorageStats{}, apperrors.UpstreamHTTP(403, ""))

	_, err := svc.Stats(context.Background(), 7)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, 403, apperrors.GetStatus(err))
}
