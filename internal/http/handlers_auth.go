package httpx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"golang.org/x/net/publicsuffix"

	"github.com/crakhack/crakhack-web/config"
	"github.com/crakhack/crakhack-web/internal/domain/access"
	"github.com/crakhack/crakhack-web/internal/observability/metrics"
	"github.com/crakhack/crakhack-web/internal/service"
)

// maxLoginFormBytes bounds the login form body.
const maxLoginFormBytes = 4 << 10

// ScreenerAuthenticator checks a submitted screener password.
type ScreenerAuthenticator interface {
	Authenticate(ctx context.Context, password string) error
}

var _ ScreenerAuthenticator = (*service.ScreenerService)(nil)

// ScreenerHandlers provides the screener login form endpoints.
type ScreenerHandlers struct {
	Svc ScreenerAuthenticator
	// CookieDomain is "", a fixed domain, or config.CookieDomainAuto.
	CookieDomain string
	Metrics      *metrics.Collector
	Logger       *slog.Logger
}

func (h *ScreenerHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Authenticate handles the login form POST for namespace ns.
// POST <ns>/auth with form fields password and next.
func (h *ScreenerHandlers) Authenticate(ns string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := screenerRouteFor(r, ns)
		root := visibleRoot(route)

		r.Body = http.MaxBytesReader(w, r.Body, maxLoginFormBytes)
		if err := r.ParseForm(); err != nil {
			h.logger().WarnContext(r.Context(), "screener login form unreadable",
				"namespace", ns,
				"error", err,
			)
			h.Metrics.CountLogin(metrics.LoginFailure)
			http.Redirect(w, r, access.LoginErrorURL(route.VisiblePrefix, root), http.StatusSeeOther)
			return
		}

		next := safeRedirectPath(r.PostFormValue("next"), root)
		if err := h.Svc.Authenticate(r.Context(), r.PostFormValue("password")); err != nil {
			h.logger().InfoContext(r.Context(), "screener login rejected",
				"namespace", ns,
				"request_id", RequestIDFromContext(r.Context()),
			)
			h.Metrics.CountLogin(metrics.LoginFailure)
			http.Redirect(w, r, access.LoginErrorURL(route.VisiblePrefix, next), http.StatusSeeOther)
			return
		}

		h.setSessionCookie(w, r)
		h.Metrics.CountLogin(metrics.LoginSuccess)
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// AuthRedirect sends direct navigation to <ns>/auth back to the login page.
func (h *ScreenerHandlers) AuthRedirect(ns string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := screenerRouteFor(r, ns)
		http.Redirect(w, r, access.LoginURL(route.VisiblePrefix, visibleRoot(route)), http.StatusFound)
	}
}

// RateLimit throttles login attempts per client IP.
func (h *ScreenerHandlers) RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			h.logger().WarnContext(r.Context(), "screener login rate limited",
				"path", r.URL.Path,
				"request_id", RequestIDFromContext(r.Context()),
			)
			h.Metrics.CountLogin(metrics.LoginLimited)
			http.Error(w, "Too many attempts. Try again shortly.", http.StatusTooManyRequests)
		}),
	)
}

// setSessionCookie issues the screener cookie. It is always Secure.
func (h *ScreenerHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     access.CookieName,
		Value:    access.CookieValue,
		Path:     "/",
		Domain:   cookieDomainFor(h.CookieDomain, r.Host),
		MaxAge:   access.CookieMaxAge,
		Expires:  time.Now().Add(access.CookieMaxAge * time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieDomainFor resolves the configured cookie domain for host.
// "auto" picks the registrable domain so apex and screener subdomain share the cookie;
// hosts without one (localhost, IPs) get a host-only cookie.
func cookieDomainFor(configured, host string) string {
	if configured != config.CookieDomainAuto {
		return configured
	}
	h := access.NormalizeHost(host)
	if h == "" || net.ParseIP(h) != nil {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(h)
	if err != nil {
		return ""
	}
	return domain
}
