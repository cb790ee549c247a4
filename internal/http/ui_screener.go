package httpx

import (
	"context"
	"net/http"

	"github.com/crakhack/crakhack-web/internal/domain/access"
)

const (
	screenerTitle       = "CRAK HACK Screener"
	screenerDescription = "Private screener for CRAK HACK"
	posterAlt           = "CRAK HACK film poster"
	invalidKeyMessage   = "Invalid access key"
)

// Screener returns the private player page for namespace ns.
func (h *UIHandlers) Screener(ns string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := screenerRouteFor(r, ns)
		setPrivateHeaders(w)
		h.Page(w, r, PageSpec{
			Meta: PageMeta{
				Title:       screenerTitle,
				PageTitle:   screenerTitle,
				CurrentPage: PageScreener,
				Description: screenerDescription,
				OGType:      "website",
				OGImageAlt:  posterAlt,
				TwitterCard: "summary_large_image",
				NoIndex:     true,
			},
			Fetch: func(_ context.Context, data map[string]any) error {
				data["EmbedURL"] = h.EmbedURL
				data["Namespace"] = route.Namespace
				return nil
			},
		})
	}
}

// Login returns the access key form for namespace ns.
func (h *UIHandlers) Login(ns string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := screenerRouteFor(r, ns)
		q := r.URL.Query()
		next := safeRedirectPath(q.Get("next"), visibleRoot(route))

		setPrivateHeaders(w)
		h.Page(w, r, PageSpec{
			Meta: PageMeta{
				Title:       "Screener Access | CRAK HACK",
				PageTitle:   "Screener Access",
				CurrentPage: PageLogin,
				Description: screenerDescription,
				OGImageAlt:  posterAlt,
				NoIndex:     true,
			},
			Fetch: func(_ context.Context, data map[string]any) error {
				data["Next"] = next
				data["FormAction"] = route.VisiblePrefix + access.AuthSegment
				if q.Get("error") == "1" {
					data["LoginError"] = invalidKeyMessage
				}
				return nil
			},
		})
	}
}
