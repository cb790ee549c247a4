package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

func serveUI(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestUIHandlers_Home(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	rec := serveUI(ui.Home, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"<title>CRAK HACK</title>",
		"A Short Film by Brendan Cleaves",
		"Trailer coming soon",
		`href="/about"`,
		"Copyright 2025",
		`content="https://crakhack.com/"`,
	}), body)
}

func TestUIHandlers_About(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	rec := serveUI(ui.About, httptest.NewRequest(http.MethodGet, "/about", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{
		"Classified Overview",
		"CAST &amp; CREW",
		"Brendan Cleaves",
		"Return to Main",
	}))
}

func TestUIHandlers_Screener(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	rec := serveUI(ui.Screener("/crakhackscreener666"), httptest.NewRequest(http.MethodGet, "/crakhackscreener666", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "noindex, nofollow", rec.Header().Get("X-Robots-Tag"))
	assert.True(t, ContainsAll(rec.Body.String(), []string{
		`src="https://player.example.com/embed/abc"`,
		`allow="autoplay; fullscreen; picture-in-picture"`,
		`<meta property="og:title" content="CRAK HACK Screener">`,
		`<meta property="og:image:alt" content="CRAK HACK film poster">`,
		`<meta name="twitter:card" content="summary_large_image">`,
		"Do not share this link.",
	}), rec.Body.String())
}

func TestUIHandlers_Login(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/screener/login?error=1&next=%2Fscreener%3Fcut%3D2", nil)
	rec := serveUI(ui.Login("/screener"), req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/screener/auth"`)
	assert.Contains(t, body, `name="next" value="/screener?cut=2"`)
	assert.Contains(t, body, "Invalid access key")
}

func TestUIHandlers_LoginDefaultsAndSanitizesNext(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/screener/login?next=https%3A%2F%2Fevil.example", nil)
	rec := serveUI(ui.Login("/screener"), req)

	body := rec.Body.String()
	assert.Contains(t, body, `name="next" value="/screener"`)
	assert.NotContains(t, body, "evil.example")
	assert.NotContains(t, body, "Invalid access key")
}

func TestUIHandlers_LoginOnScreenerHost(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/crakhackscreener666/login", nil)
	req = req.WithContext(SetScreenerRouteInContext(req.Context(), ScreenerRoute{Namespace: "/crakhackscreener666"}))
	rec := serveUI(ui.Login("/crakhackscreener666"), req)

	body := rec.Body.String()
	assert.Contains(t, body, `action="/auth"`)
	assert.Contains(t, body, `name="next" value="/"`)
}

func TestUIHandlers_Stats(t *testing.T) {
	summary := sampleSummary()
	summary.GeneratedAt = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	summary.Cities = append(summary.Cities, analytics.Row{Name: "Llanfairpwllgwyngyllgogerychwyrndrobwllllantysiliogogogoch", Requests: 12})
	fa := &fakeAnalytics{summary: summary}
	fs := &fakeStorage{stats: analytics.StorageStats{
		Totals:       analytics.StorageTotals{Requests: 2048, GetRequests: 2000, PutRequests: 48},
		Storage:      &analytics.StorageSnapshot{ObjectCount: 3, PayloadSize: 1536},
		TopCountries: []analytics.CountryRow{{Country: "GB", Requests: 40}},
	}}
	ui := CreateUIHandlersForTest(t, fa, fs)

	rec := serveUI(ui.Stats, httptest.NewRequest(http.MethodGet, "/crakhackstats666?days=14&target=screener", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []analytics.Target{analytics.TargetScreener}, fa.calls)
	assert.Equal(t, []int{14}, fa.days)
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"SCREENER SIGNALS",
		"56,789",
		"London",
		"Firefox",
		"1.5 KB",
		"2,000",
		`href="/crakhackstats666?days=30&amp;target=screener"`,
		"chip chip-active",
		`<time datetime="2026-10-18T09:30:00Z"`,
		`<span class="bar-rank">2</span>`,
		`title="Llanfairpwllgwyngyllgogerychwyrndrobwllllantysiliogogogoch">Llanfairpwllgwyngyllgogeryc…</span>`,
	}), body)
	assert.NotContains(t, body, "Unable to load stats.")
}

func TestUIHandlers_StatsDegradesOnUpstreamError(t *testing.T) {
	fa := &fakeAnalytics{err: apperrors.UpstreamHTTP(http.StatusBadGateway, "")}
	fs := &fakeStorage{err: apperrors.UpstreamGraphQL("nope")}
	ui := CreateUIHandlersForTest(t, fa, fs)

	rec := serveUI(ui.Stats, httptest.NewRequest(http.MethodGet, "/crakhackstats666", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Unable to load stats.")
	assert.Contains(t, body, "Geo data unavailable")
	assert.Contains(t, body, `role="alert"`)
}

func TestUIHandlers_StatsMissingStorageConfig(t *testing.T) {
	fa := &fakeAnalytics{summary: sampleSummary()}
	fs := &fakeStorage{err: apperrors.ConfigurationMissing("CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ACCOUNT_ID", "R2_BUCKET_NAME")}
	ui := CreateUIHandlersForTest(t, fa, fs)

	rec := serveUI(ui.Stats, httptest.NewRequest(http.MethodGet, "/crakhackstats666", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing env vars. Required: CLOUDFLARE_API_TOKEN, CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME.")
	assert.NotContains(t, rec.Body.String(), `role="alert"`)
}

func TestUIHandlers_NotFound(t *testing.T) {
	ui := CreateUIHandlersForTest(t, &fakeAnalytics{}, &fakeStorage{})

	rec := serveUI(ui.NotFound, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signal Lost")
	assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex, nofollow">`)
}
