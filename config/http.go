package config

import "strings"

// CookieDomainAuto derives the cookie domain from the request host's registrable domain.
const CookieDomainAuto = "auto"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public URL of the marketing site, used for Open Graph tags.
	BaseURL string `env:"APP_BASE_URL" envDefault:"https://crakhack.com"`

	// CookieDomain is the domain for the screener cookie.
	// Leave empty to scope the cookie to the request host. "auto" shares it
	// between the apex and the screener subdomain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// StatsPath is where the analytics dashboard is mounted.
	StatsPath string `env:"STATS_PATH" envDefault:"/crakhackstats666"`

	// CompressionEnabled enables gzip compression for text-based responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}

	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	h.CookieDomain = strings.ToLower(strings.TrimSpace(h.CookieDomain))

	h.StatsPath = normalizePathPrefix(h.StatsPath)
	if h.StatsPath == "" || h.StatsPath == "/" {
		h.StatsPath = "/crakhackstats666"
	}
}

// normalizePathPrefix trims whitespace and trailing slashes and forces a leading slash.
func normalizePathPrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
