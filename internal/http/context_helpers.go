package httpx

import (
	"context"
	"net/http"
)

// screenerRouteKey is an unexported context key type to avoid collisions across packages.
type screenerRouteKey struct{}

// requestIDKey carries the per-request correlation id.
type requestIDKey struct{}

// routeKey carries a *routeLabel so outer middleware can read the matched mux pattern.
type routeKey struct{}

// ScreenerRoute describes where a gated request landed.
type ScreenerRoute struct {
	// Namespace is the protected namespace the request was routed into.
	Namespace string
	// VisiblePrefix is the prefix the browser sees: "" on the screener host, Namespace otherwise.
	VisiblePrefix string
}

// SetScreenerRouteInContext returns a child context carrying route.
func SetScreenerRouteInContext(ctx context.Context, route ScreenerRoute) context.Context {
	return context.WithValue(ctx, screenerRouteKey{}, route)
}

// ScreenerRouteFromContext returns the route stored by the gate, if any.
func ScreenerRouteFromContext(ctx context.Context) (ScreenerRoute, bool) {
	route, ok := ctx.Value(screenerRouteKey{}).(ScreenerRoute)
	return route, ok
}

// screenerRouteFor returns the gate's route for r, defaulting to ns when the gate did not run.
func screenerRouteFor(r *http.Request, ns string) ScreenerRoute {
	if route, ok := ScreenerRouteFromContext(r.Context()); ok && route.Namespace == ns {
		return route
	}
	return ScreenerRoute{Namespace: ns, VisiblePrefix: ns}
}

// SetRequestIDInContext returns a child context carrying the request id.
func SetRequestIDInContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type routeLabel struct {
	pattern string
}

func withRouteLabel(ctx context.Context) (context.Context, *routeLabel) {
	label := &routeLabel{}
	return context.WithValue(ctx, routeKey{}, label), label
}

// recordRoute stores the mux pattern that served r for the metrics middleware.
func recordRoute(r *http.Request) {
	if label, ok := r.Context().Value(routeKey{}).(*routeLabel); ok && label != nil {
		label.pattern = r.Pattern
	}
}
