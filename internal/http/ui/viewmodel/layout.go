package viewmodel

// Layout captures shared chrome metadata (titles, navigation state, social cards).
type Layout struct {
	Title       string
	PageTitle   string
	CurrentPage string
	Description string
	// CanonicalURL is the absolute page URL for og:url; empty omits the tag.
	CanonicalURL string
	OGType       string
	OGImage      string
	OGImageAlt   string
	TwitterCard  string
	// NoIndex emits a robots noindex meta tag.
	NoIndex bool
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
