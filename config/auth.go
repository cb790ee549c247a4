package config

import (
	"strings"
	"time"
)

// Default screener policy values.
var (
	defaultScreenerNamespaces = []string{"/crakhackscreener666", "/screener"}
	defaultScreenerHosts      = []string{"screener.crakhack.com", "screener.crackhack.com"}
)

// ScreenerConfig groups the password gate and login settings.
type ScreenerConfig struct {
	// Password is the shared secret. When empty the gate denies every protected request.
	Password string `env:"PASSWORD"`

	// Namespaces are the protected path prefixes. The first one is primary:
	// screener-host rewrites target it.
	Namespaces []string `env:"NAMESPACES" envDefault:"/crakhackscreener666,/screener"`

	// Hosts are the dedicated screener hostnames whose root maps onto the primary namespace.
	Hosts []string `env:"HOSTS" envDefault:"screener.crakhack.com,screener.crackhack.com"`

	// AllowPreviewBots lets link-unfurling crawlers read protected pages.
	AllowPreviewBots bool `env:"ALLOW_PREVIEW_BOTS" envDefault:"true"`

	// EmbedURL is the private player iframe source.
	EmbedURL string `env:"EMBED_URL" envDefault:"https://framerate.com/embed/9fT3PiD8"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT"  envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
}

// Sanitize normalises namespaces and hosts and applies rate limit floors.
func (c *ScreenerConfig) Sanitize() {
	c.Namespaces = normalizeNamespaces(c.Namespaces)
	if len(c.Namespaces) == 0 {
		c.Namespaces = append([]string(nil), defaultScreenerNamespaces...)
	}

	c.Hosts = normalizeHosts(c.Hosts)
	if len(c.Hosts) == 0 {
		c.Hosts = append([]string(nil), defaultScreenerHosts...)
	}

	c.EmbedURL = strings.TrimSpace(c.EmbedURL)

	if c.LoginRateLimit <= 0 {
		c.LoginRateLimit = 10
	}
	if c.LoginRateWindow <= 0 {
		c.LoginRateWindow = time.Minute
	}
}

// PrimaryNamespace returns the namespace used for screener-host rewrites.
func (c *ScreenerConfig) PrimaryNamespace() string {
	if len(c.Namespaces) == 0 {
		return defaultScreenerNamespaces[0]
	}
	return c.Namespaces[0]
}

// IsConfigured reports whether a shared secret has been set.
func (c *ScreenerConfig) IsConfigured() bool {
	return c.Password != ""
}

func normalizeNamespaces(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, ns := range raw {
		ns = normalizePathPrefix(ns)
		if ns == "" || ns == "/" {
			continue
		}
		if _, dup := seen[ns]; dup {
			continue
		}
		seen[ns] = struct{}{}
		out = append(out, ns)
	}
	return out
}

func normalizeHosts(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
