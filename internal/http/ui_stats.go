package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

const (
	statsLocationLimit = 8
	statsCountryLimit  = 8
	statsClientLimit   = 6

	statsUnavailableMessage = "Unable to load stats."
	geoUnavailableMessage   = "Geo data unavailable. Add CLOUDFLARE_ZONE_ID + HOSTNAME."
	noDataMessage           = "No data for this range."
)

// RangeOption is one range button on the dashboard.
type RangeOption struct {
	Days   int
	URL    string
	Active bool
}

// TargetOption is one hostname switch on the dashboard.
type TargetOption struct {
	Label  string
	Host   string
	URL    string
	Active bool
}

// BreakdownPanel is one ranked bar list on the dashboard.
type BreakdownPanel struct {
	Title string
	Rows  []analytics.Row
	Peak  int64
	Empty string
}

func newBreakdownPanel(title string, rows []analytics.Row, empty string) BreakdownPanel {
	return BreakdownPanel{Title: title, Rows: rows, Peak: peakRequests(rows), Empty: empty}
}

// statsView is the dashboard content. Summary is always populated, zeroed on failure.
type statsView struct {
	Days    int
	Target  analytics.Target
	Host    string
	Ranges  []RangeOption
	Targets []TargetOption

	Summary       analytics.Summary
	SummaryError  string
	Locations     []analytics.Row
	Panels        []BreakdownPanel
	PeakSeries    int64
	Storage       *analytics.StorageStats
	StorageError  string
	StorageMisses []string
	TopCountries  []analytics.CountryRow
	PeakCountry   int64
}

// Stats renders the analytics dashboard. Upstream failures degrade the page; it still renders 200.
func (h *UIHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := analytics.ClampDays(q.Get("days"))
	target := analytics.ParseTarget(q.Get("target"))

	setPrivateHeaders(w)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Stats | CRAK HACK",
			PageTitle:   "Screener Signals",
			CurrentPage: PageStats,
			NoIndex:     true,
		},
		Fetch: func(ctx context.Context, data map[string]any) error {
			view := h.loadStats(ctx, target, days)
			data["Stats"] = view
			if view.SummaryError != "" {
				data["Error"] = true
				data["ErrorMessage"] = view.SummaryError
			}
			return nil
		},
	})
}

func (h *UIHandlers) loadStats(ctx context.Context, target analytics.Target, days int) statsView {
	view := statsView{
		Days:    days,
		Target:  target,
		Ranges:  h.rangeOptions(target, days),
		Targets: h.targetOptions(target, days),
	}
	if h.Analytics != nil {
		view.Host = h.Analytics.HostFor(target)
	}

	var (
		summary    analytics.Summary
		summaryErr error
		storage    analytics.StorageStats
		storageErr error
	)

	// Goroutines record their own errors so one failing source never cancels the other.
	var g errgroup.Group
	if h.Analytics != nil {
		g.Go(func() error {
			summary, summaryErr = h.Analytics.Summary(ctx, target, days)
			return nil
		})
	}
	if h.Storage != nil {
		g.Go(func() error {
			storage, storageErr = h.Storage.Stats(ctx, days)
			return nil
		})
	}
	_ = g.Wait()

	if h.Analytics == nil || summaryErr != nil {
		summary = analytics.EmptySummary(target, days)
		view.SummaryError = statsUnavailableMessage
		if summaryErr != nil {
			h.logger().WarnContext(ctx, "dashboard summary degraded",
				"target", string(target),
				"days", days,
				"error", summaryErr,
			)
			if apperrors.IsConfigurationMissing(summaryErr) {
				view.SummaryError = userMessage(summaryErr)
			}
		}
	}
	summary.Normalize()
	view.Summary = summary
	view.Locations = summary.Locations(statsLocationLimit)
	view.Panels = []BreakdownPanel{
		newBreakdownPanel("Top Locations", view.Locations, geoUnavailableMessage),
		newBreakdownPanel("Browsers", capRows(summary.Browsers, statsClientLimit), noDataMessage),
		newBreakdownPanel("Operating Systems", capRows(summary.OperatingSystems, statsClientLimit), noDataMessage),
	}
	for _, p := range summary.SeriesWindow {
		view.PeakSeries = max(view.PeakSeries, p.Requests)
	}

	h.applyStorage(ctx, &view, storage, storageErr)
	return view
}

func (h *UIHandlers) applyStorage(ctx context.Context, view *statsView, stats analytics.StorageStats, err error) {
	if h.Storage == nil {
		return
	}
	switch {
	case err == nil:
		view.Storage = &stats
		view.TopCountries = stats.TopCountries
		if len(view.TopCountries) > statsCountryLimit {
			view.TopCountries = view.TopCountries[:statsCountryLimit]
		}
		for _, c := range view.TopCountries {
			view.PeakCountry = max(view.PeakCountry, c.Requests)
		}
	case apperrors.IsConfigurationMissing(err):
		view.StorageMisses = missingVars(err)
		view.StorageError = userMessage(err)
	default:
		h.logger().WarnContext(ctx, "dashboard storage stats degraded", "error", err)
		view.StorageError = statsUnavailableMessage
	}
}

func (h *UIHandlers) statsURL(target analytics.Target, days int) string {
	v := url.Values{}
	v.Set("days", strconv.Itoa(days))
	v.Set("target", string(target))
	return h.StatsPath + "?" + v.Encode()
}

func (h *UIHandlers) rangeOptions(target analytics.Target, days int) []RangeOption {
	opts := make([]RangeOption, 0, len(statsRangeOptions))
	for _, d := range statsRangeOptions {
		opts = append(opts, RangeOption{Days: d, URL: h.statsURL(target, d), Active: d == days})
	}
	return opts
}

func (h *UIHandlers) targetOptions(target analytics.Target, days int) []TargetOption {
	targets := []struct {
		t     analytics.Target
		label string
	}{
		{analytics.TargetSite, "Site"},
		{analytics.TargetScreener, "Screener"},
	}
	opts := make([]TargetOption, 0, len(targets))
	for _, t := range targets {
		opt := TargetOption{Label: t.label, URL: h.statsURL(t.t, days), Active: t.t == target}
		if h.Analytics != nil {
			opt.Host = h.Analytics.HostFor(t.t)
		}
		opts = append(opts, opt)
	}
	return opts
}

func peakRequests(rows []analytics.Row) int64 {
	var peak int64
	for _, row := range rows {
		peak = max(peak, row.Requests)
	}
	return peak
}

func capRows(rows []analytics.Row, limit int) []analytics.Row {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
