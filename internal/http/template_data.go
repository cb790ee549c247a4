package httpx

import (
	"net/http"
	"strings"

	"github.com/crakhack/crakhack-web/internal/http/ui/viewmodel"
)

// PageMeta is the per-page chrome metadata passed to basePageData.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
	Description string
	OGType      string
	OGImage     string
	OGImageAlt  string
	TwitterCard string
	NoIndex     bool
}

const (
	defaultDescription = "A short film by Brendan Cleaves."
	defaultOGImage     = "/images/poster.jpg"
	defaultTwitterCard = "summary_large_image"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, baseURL string, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, baseURL, meta)}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildLayout fills layout defaults and resolves absolute social URLs against baseURL.
func buildLayout(r *http.Request, baseURL string, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		Description: meta.Description,
		OGType:      meta.OGType,
		OGImage:     meta.OGImage,
		OGImageAlt:  meta.OGImageAlt,
		TwitterCard: meta.TwitterCard,
		NoIndex:     meta.NoIndex,
	}
	if layout.Description == "" {
		layout.Description = defaultDescription
	}
	if layout.OGType == "" {
		layout.OGType = "website"
	}
	if layout.OGImage == "" {
		layout.OGImage = defaultOGImage
	}
	if layout.TwitterCard == "" {
		layout.TwitterCard = defaultTwitterCard
	}

	if baseURL != "" {
		layout.OGImage = absoluteURL(baseURL, layout.OGImage)
		if r != nil && r.URL != nil {
			layout.CanonicalURL = absoluteURL(baseURL, r.URL.Path)
		}
	}
	return layout
}

func absoluteURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// basePageData returns the map every page template starts from.
func basePageData(r *http.Request, baseURL string, meta PageMeta) map[string]any {
	layout := buildLayout(r, baseURL, meta)
	return map[string]any{
		"Title":        layout.Title,
		"PageTitle":    layout.PageTitle,
		"CurrentPage":  layout.CurrentPage,
		"Layout":       layout,
		"RequestID":    requestIDFor(r),
		"StaticPrefix": "/static",
	}
}

func requestIDFor(r *http.Request) string {
	if r == nil {
		return ""
	}
	return RequestIDFromContext(r.Context())
}
