package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	"github.com/crakhack/crakhack-web/internal/service"
)

// AnalyticsReader is the aggregator surface the dashboard and JSON API need.
type AnalyticsReader interface {
	Summary(ctx context.Context, target analytics.Target, days int) (analytics.Summary, error)
	HostFor(target analytics.Target) string
}

// StorageReader is the storage stats surface the dashboard and JSON API need.
type StorageReader interface {
	Stats(ctx context.Context, days int) (analytics.StorageStats, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AnalyticsReader = (*service.AnalyticsService)(nil)
	_ StorageReader   = (*service.StorageStatsService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Analytics AnalyticsReader
	Storage   StorageReader
	// EmbedURL is the private player iframe source.
	EmbedURL string
	// BaseURL is the public site origin used for absolute Open Graph URLs.
	BaseURL   string
	StatsPath string
	Logger    *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta PageMeta
	// Status defaults to 200.
	Status int
	Fetch  func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, h.BaseURL, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "page data fetch failed",
				"page", spec.Meta.CurrentPage,
				"error", err,
			)
			markPageError(data)
		}
	}

	status := spec.Status
	if status == 0 {
		status = http.StatusOK
	}
	if err := h.T.RenderStatus(w, status, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "full page render")
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = "An unexpected error occurred. Please try again."
}

// logAndRenderTemplateError logs a template failure and falls back to a plain 500.
// Nothing has been written yet because the renderer buffers its output.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, phase string) {
	h.logger().ErrorContext(r.Context(), "template render failed",
		"phase", phase,
		"path", r.URL.Path,
		"error", err,
		"request_id", RequestIDFromContext(r.Context()),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// setPrivateHeaders keeps gated pages out of shared caches and search indexes.
func setPrivateHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Robots-Tag", "noindex, nofollow")
}

// visibleRoot is the namespace root as the browser sees it.
func visibleRoot(route ScreenerRoute) string {
	if route.VisiblePrefix == "" {
		return "/"
	}
	return route.VisiblePrefix
}

// safeRedirectPath returns candidate when it is a same-origin absolute path, else fallback.
func safeRedirectPath(candidate, fallback string) string {
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || strings.Contains(candidate, `\`) {
		return fallback
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	return candidate
}
