package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

func serveAPI(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestAnalyticsHandlers_Summary(t *testing.T) {
	fa := &fakeAnalytics{summary: sampleSummary()}
	h := &AnalyticsHandlers{Analytics: fa, Storage: &fakeStorage{}}

	rec := serveAPI(h.Summary, "/api/analytics?days=500&target=screener")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, []analytics.Target{analytics.TargetScreener}, fa.calls)
	assert.Equal(t, []int{analytics.MaxDays}, fa.days)

	var got analytics.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(56789), got.TotalsWindow.Requests)
	assert.Equal(t, analytics.MaxDays, got.Range.Days)
}

func TestAnalyticsHandlers_SummaryDefaults(t *testing.T) {
	fa := &fakeAnalytics{summary: sampleSummary()}
	h := &AnalyticsHandlers{Analytics: fa, Storage: &fakeStorage{}}

	rec := serveAPI(h.Summary, "/api/analytics?days=abc")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []analytics.Target{analytics.TargetSite}, fa.calls)
	assert.Equal(t, []int{analytics.DefaultDays}, fa.days)
}

func TestAnalyticsHandlers_SummaryErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "configuration",
			err:     apperrors.ConfigurationMissing("CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ZONE_ID"),
			status:  http.StatusInternalServerError,
			code:    "configuration_missing",
			message: "Missing env vars. Required: CLOUDFLARE_API_TOKEN, CLOUDFLARE_ZONE_ID.",
		},
		{
			name:    "upstream http",
			err:     apperrors.UpstreamHTTP(http.StatusForbidden, "denied"),
			status:  http.StatusBadGateway,
			code:    "upstream_http",
			message: "Cloudflare API error",
		},
		{
			name:    "upstream graphql",
			err:     apperrors.UpstreamGraphQL("unknown field"),
			status:  http.StatusBadGateway,
			code:    "upstream_graphql",
			message: "Cloudflare API error",
		},
		{
			name:   "deadline",
			err:    apperrors.FromContext(context.DeadlineExceeded),
			status: http.StatusGatewayTimeout,
			code:   "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AnalyticsHandlers{Analytics: &fakeAnalytics{err: tt.err}, Storage: &fakeStorage{}}
			rec := serveAPI(h.Summary, "/api/analytics")

			assert.Equal(t, tt.status, rec.Code)
			var body apiErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestAnalyticsHandlers_StorageStats(t *testing.T) {
	stats := analytics.StorageStats{
		Totals:   analytics.StorageTotals{Requests: 10, GetRequests: 7, PutRequests: 3},
		ByAction: []analytics.ActionRow{{ActionType: "GetObject", ActionStatus: "success", Requests: 7}},
	}
	h := &AnalyticsHandlers{Analytics: &fakeAnalytics{}, Storage: &fakeStorage{stats: stats}}

	rec := serveAPI(h.StorageStats, "/api/r2-stats?days=0.5")

	require.Equal(t, http.StatusOK, rec.Code)
	var got analytics.StorageStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stats.Totals, got.Totals)
	assert.Equal(t, analytics.MinDays, got.Range.Days)
}

func TestAnalyticsHandlers_StorageStatsMissingConfig(t *testing.T) {
	err := apperrors.ConfigurationMissing("CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ACCOUNT_ID", "R2_BUCKET_NAME")
	h := &AnalyticsHandlers{Analytics: &fakeAnalytics{}, Storage: &fakeStorage{err: err}}

	rec := serveAPI(h.StorageStats, "/api/r2-stats")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"error":"Missing env vars. Required: CLOUDFLARE_API_TOKEN, CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME."}`,
		rec.Body.String())
}

func TestAnalyticsHandlers_StorageStatsUpstream(t *testing.T) {
	h := &AnalyticsHandlers{
		Analytics: &fakeAnalytics{},
		Storage:   &fakeStorage{err: apperrors.UpstreamHTTP(http.StatusUnauthorized, "")},
	}
	rec := serveAPI(h.StorageStats, "/api/r2-stats")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Cloudflare API error","status":401}`, rec.Body.String())

	h.Storage = &fakeStorage{err: apperrors.UpstreamGraphQL("bad query")}
	rec = serveAPI(h.StorageStats, "/api/r2-stats")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Cloudflare API error","status":502}`, rec.Body.String())
}
