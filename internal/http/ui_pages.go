package httpx

import (
	"context"
	"net/http"

	"github.com/crakhack/crakhack-web/internal/content"
)

// Home renders the landing page.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	film := content.FilmInfo()
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       film.Title,
			PageTitle:   film.Title,
			CurrentPage: PageHome,
			Description: "CRAK HACK - A short film experience",
		},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Film"] = film
			data["SocialLinks"] = content.SocialLinks()
			return nil
		},
	})
}

// About renders the film statement and cast grid.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	film := content.FilmInfo()
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "About | " + film.Title,
			PageTitle:   "About " + film.Title,
			CurrentPage: PageAbout,
			Description: film.Description,
		},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Film"] = film
			data["Profiles"] = content.Profiles()
			return nil
		},
	})
}

// NotFound renders the 404 page for any unmatched route.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Not Found | CRAK HACK",
			PageTitle:   "Signal Lost",
			CurrentPage: PageNotFound,
			NoIndex:     true,
		},
		Status: http.StatusNotFound,
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Path"] = r.URL.Path
			return nil
		},
	})
}
