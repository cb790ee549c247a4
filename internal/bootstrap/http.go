package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crakhack/crakhack-web/config"
	httpx "github.com/crakhack/crakhack-web/internal/http"
)

const defaultAddr = ":8080"

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router and its middleware chain.
//
// Order: Recover -> RequestID -> Logging -> Metrics -> Gate -> Compression -> Router.
// The gate sits outside the router so rewrites change the routed path.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	metricsPath := ""
	if cfg.Services.Metrics != nil {
		metricsPath = appCfg.Observability.Metrics.Path
	}

	router, err := httpx.NewRouter(httpx.RouterServices{
		Analytics: cfg.Services.Analytics,
		Storage:   cfg.Services.Storage,
		Screener:  cfg.Services.Screener,
		Routes: httpx.ScreenerRoutes{
			Namespaces:      appCfg.Screener.Namespaces,
			EmbedURL:        appCfg.Screener.EmbedURL,
			LoginRateLimit:  appCfg.Screener.LoginRateLimit,
			LoginRateWindow: appCfg.Screener.LoginRateWindow,
		},
		Metrics:      cfg.Services.Metrics,
		MetricsPath:  metricsPath,
		CookieDomain: appCfg.HTTP.CookieDomain,
		BaseURL:      appCfg.HTTP.BaseURL,
		StatsPath:    appCfg.HTTP.StatsPath,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Compression is innermost so logging and metrics see the final status.
	h := router
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger})(h)
	}

	h = httpx.Gate(cfg.Services.Policy, logger)(h)
	h = httpx.Metrics(cfg.Services.Metrics)(h)
	h = httpx.Logging(logger)(h)
	h = httpx.RequestID()(h)
	h = httpx.Recover(logger)(h)

	return h, nil
}

// NewHTTPServer builds the server with the standard timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = defaultAddr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// StartHTTPServer starts serving in the background. Listen failures go to errCh.
func StartHTTPServer(server *http.Server, logger *slog.Logger, errCh chan<- error) {
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "shutting down HTTP server")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.InfoContext(ctx, "HTTP server stopped")
	return nil
}
