package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageScreener = "screener"
	PageLogin    = "login"
	PageStats    = "stats"
	PageNotFound = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
)

// Dashboard range buttons and the site-wide defaults.
//
//nolint:gochecknoglobals // static read-only lookup
var statsRangeOptions = []int{7, 14, 30}

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:     "home-content",
	PageAbout:    "about-content",
	PageScreener: "screener-content",
	PageLogin:    "login-content",
	PageStats:    "stats-content",
	PageNotFound: "not-found-content",
}

// ContentTemplateFor returns the content template for a page, falling back to the 404 content.
func ContentTemplateFor(page string) string {
	if name, ok := contentTemplates[page]; ok {
		return name
	}
	return contentTemplates[PageNotFound]
}
