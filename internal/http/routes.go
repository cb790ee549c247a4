package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	crakhack "github.com/crakhack/crakhack-web"
	"github.com/crakhack/crakhack-web/internal/observability/metrics"
)

// ScreenerRoutes configures the protected namespace routes.
type ScreenerRoutes struct {
	// Namespaces are the protected prefixes; each gets its own page, login and auth routes.
	Namespaces      []string
	EmbedURL        string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Analytics AnalyticsReader
	Storage   StorageReader
	Screener  ScreenerAuthenticator
	Routes    ScreenerRoutes
	// Metrics is optional; nil disables the metrics endpoint.
	Metrics      *metrics.Collector
	MetricsPath  string
	CookieDomain string
	BaseURL      string
	StatsPath    string
	IsDev        bool         // Development mode flag for reading templates and assets from disk.
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router. The returned handler records
// the matched pattern for the metrics middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Analytics == nil || services.Storage == nil || services.Screener == nil {
		return nil, errors.New("analytics, storage and screener services are required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services.IsDev, logger),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	ui := &UIHandlers{
		T:         tr,
		Analytics: services.Analytics,
		Storage:   services.Storage,
		EmbedURL:  services.Routes.EmbedURL,
		BaseURL:   services.BaseURL,
		StatsPath: services.StatsPath,
		Logger:    logger,
	}
	auth := &ScreenerHandlers{
		Svc:          services.Screener,
		CookieDomain: services.CookieDomain,
		Metrics:      services.Metrics,
		Logger:       logger,
	}
	api := &AnalyticsHandlers{
		Analytics: services.Analytics,
		Storage:   services.Storage,
		Logger:    logger,
	}

	mux := http.NewServeMux()
	registerPageRoutes(mux, ui, services.StatsPath)
	registerScreenerRoutes(mux, ui, auth, services.Routes)
	registerAPIRoutes(mux, api)
	registerOpsRoutes(mux, services.Metrics, services.MetricsPath)
	registerStaticRoutes(mux, staticFS(services.IsDev, logger), services.IsDev)

	// Anything unmatched, including wrong methods on page paths, is a 404 page.
	mux.HandleFunc("/", ui.NotFound)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		recordRoute(r)
	}), nil
}

func registerPageRoutes(mux *http.ServeMux, ui *UIHandlers, statsPath string) {
	mux.HandleFunc("GET /{$}", ui.Home)
	mux.HandleFunc("GET /about", ui.About)
	mux.HandleFunc("GET "+statsPath, ui.Stats)
}

func registerScreenerRoutes(mux *http.ServeMux, ui *UIHandlers, auth *ScreenerHandlers, cfg ScreenerRoutes) {
	limit := auth.RateLimit(cfg.LoginRateLimit, cfg.LoginRateWindow)
	for _, ns := range cfg.Namespaces {
		mux.Handle("GET "+ns, ui.Screener(ns))
		mux.Handle("GET "+ns+"/login", ui.Login(ns))
		mux.Handle("POST "+ns+"/login", limit(auth.Authenticate(ns)))
		mux.Handle("POST "+ns+"/auth", limit(auth.Authenticate(ns)))
		mux.Handle("GET "+ns+"/auth", auth.AuthRedirect(ns))
	}
}

func registerAPIRoutes(mux *http.ServeMux, api *AnalyticsHandlers) {
	mux.HandleFunc("GET /api/analytics", api.Summary)
	mux.HandleFunc("GET /api/r2-stats", api.StorageStats)
}

func registerOpsRoutes(mux *http.ServeMux, collector *metrics.Collector, metricsPath string) {
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	if collector != nil && metricsPath != "" {
		mux.Handle("GET "+metricsPath, collector.Handler())
	}
}

func registerStaticRoutes(mux *http.ServeMux, static fs.FS, isDev bool) {
	files := staticWithCacheHeaders(http.FileServer(http.FS(static)), isDev)
	mux.Handle("GET /static/", http.StripPrefix("/static", files))
	mux.Handle("GET /images/", files)
	mux.Handle("GET /robots.txt", files)
	mux.Handle("GET /favicon.ico", files)
}

// templateFS reads templates from disk in dev mode for hot reloading, otherwise from the embedded FS.
func templateFS(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(crakhack.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable; falling back to disk", "error", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticFS mirrors templateFS for frontend/static.
func staticFS(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(StaticPathFromRoot)
	}
	sub, err := fs.Sub(crakhack.StaticFS, StaticPathFromRoot)
	if err != nil {
		logger.Warn("embedded static assets unavailable; falling back to disk", "error", err)
		return os.DirFS(StaticPathFromRoot)
	}
	return sub
}

// staticWithCacheHeaders wraps a static file handler to add cache headers.
// Directory paths are not listed.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		switch {
		case isDev:
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		case strings.HasPrefix(r.URL.Path, "/images/"):
			w.Header().Set("Cache-Control", "public, max-age=86400")
		default:
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}
