package httpx

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// fakeAnalytics is a canned AnalyticsReader.
type fakeAnalytics struct {
	mu      sync.Mutex
	summary analytics.Summary
	err     error
	calls   []analytics.Target
	days    []int
}

func (f *fakeAnalytics) Summary(_ context.Context, target analytics.Target, days int) (analytics.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, target)
	f.days = append(f.days, days)
	if f.err != nil {
		return analytics.Summary{}, f.err
	}
	s := f.summary
	s.Target = target
	s.Range.Days = days
	s.Normalize()
	return s, nil
}

func (f *fakeAnalytics) HostFor(target analytics.Target) string {
	if target == analytics.TargetScreener {
		return "screener.crakhack.com"
	}
	return "crakhack.com"
}

// fakeStorage is a canned StorageReader.
type fakeStorage struct {
	stats analytics.StorageStats
	err   error
}

func (f *fakeStorage) Stats(_ context.Context, days int) (analytics.StorageStats, error) {
	if f.err != nil {
		return analytics.StorageStats{}, f.err
	}
	s := f.stats
	s.Range.Days = days
	return s, nil
}

// fakeScreener accepts exactly one password; an empty secret rejects everything.
type fakeScreener struct {
	secret string
}

func (f *fakeScreener) Authenticate(_ context.Context, password string) error {
	if f.secret == "" || password != f.secret {
		return apperrors.AuthenticationFailed()
	}
	return nil
}

// CreateUIHandlersForTest creates UIHandlers with a template renderer for testing.
func CreateUIHandlersForTest(t *testing.T, a AnalyticsReader, s StorageReader) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		T:         RequireTemplateRenderer(t),
		Analytics: a,
		Storage:   s,
		EmbedURL:  "https://player.example.com/embed/abc",
		BaseURL:   "https://crakhack.com",
		StatsPath: "/crakhackstats666",
	}
}

func sampleSummary() analytics.Summary {
	return analytics.Summary{
		Host:         "crakhack.com",
		TotalsWindow: analytics.Totals{Visits: 1234, Requests: 56789},
		Totals24h:    analytics.Totals{Visits: 12, Requests: 345},
		SeriesWindow: []analytics.SeriesPoint{
			{Bucket: "2026-10-16", Visits: 4, Requests: 100},
			{Bucket: "2026-10-17", Visits: 8, Requests: 245},
		},
		Countries: []analytics.Row{{Name: "United Kingdom", Visits: 9, Requests: 300}},
		Cities:    []analytics.Row{{Name: "London", Visits: 7, Requests: 200}},
		Browsers:  []analytics.Row{{Name: "Firefox", Visits: 3, Requests: 90}},
	}
}
