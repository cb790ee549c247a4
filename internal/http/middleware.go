package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/crakhack/crakhack-web/internal/domain/access"
	"github.com/crakhack/crakhack-web/internal/observability/metrics"
)

// RequestIDHeader is echoed on every response and accepted from trusted proxies.
const RequestIDHeader = "X-Request-Id"

const maxInboundRequestIDLen = 128

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := newRespWriter(w)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("host", r.Host),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func newRespWriter(w http.ResponseWriter) *respWriter {
	return &respWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *respWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("request_id", RequestIDFromContext(r.Context())),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID tags each request with an id, reusing a sane inbound X-Request-Id.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxInboundRequestIDLen {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(SetRequestIDInContext(r.Context(), id)))
		})
	}
}

// Metrics records request counts and latencies by matched route pattern.
// A nil collector disables the middleware.
func Metrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, label := withRouteLabel(r.Context())
			ww := newRespWriter(w)
			next.ServeHTTP(ww, r.WithContext(ctx))
			c.ObserveRequest(metrics.RequestMetric{
				Method:   r.Method,
				Route:    label.pattern,
				Status:   ww.status,
				Duration: time.Since(start),
			})
		})
	}
}

// Gate applies the screener access policy before routing. Rewrites change the
// routed path while the browser URL stays the same; redirects go to the login page.
func Gate(policy *access.Policy, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		if policy == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := policy.Decide(gateRequest(r))

			switch d.Kind {
			case access.RedirectToLogin:
				logger.DebugContext(r.Context(), "screener gate redirect",
					"path", r.URL.Path, "namespace", d.Namespace)
				http.Redirect(w, r, d.Location, redirectStatus(r.Method))
				return
			case access.RewriteToScreenerRoot, access.RewriteIntoScreenerNamespace:
				ctx := SetScreenerRouteInContext(r.Context(), ScreenerRoute{Namespace: d.Namespace})
				next.ServeHTTP(w, rewritePath(r.WithContext(ctx), d.Path))
				return
			case access.Allow:
				if d.Namespace != "" {
					ctx := SetScreenerRouteInContext(r.Context(), ScreenerRoute{
						Namespace:     d.Namespace,
						VisiblePrefix: d.VisiblePrefix,
					})
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func gateRequest(r *http.Request) access.Request {
	req := access.Request{
		Path:      r.URL.Path,
		RawQuery:  r.URL.RawQuery,
		Host:      r.Host,
		UserAgent: r.UserAgent(),
	}
	if c, err := r.Cookie(access.CookieName); err == nil {
		req.Cookie = c.Value
	}
	return req
}

// rewritePath returns r with its routed path replaced. r must already be a copy.
func rewritePath(r *http.Request, path string) *http.Request {
	u := *r.URL
	u.Path = path
	u.RawPath = ""
	r.URL = &u
	return r
}

// redirectStatus is 302 for GET/HEAD and 303 otherwise.
func redirectStatus(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
