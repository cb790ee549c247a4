package config

import (
	"strings"
	"time"
)

// DefaultGraphQLEndpoint is the Cloudflare GraphQL Analytics API.
const DefaultGraphQLEndpoint = "https://api.cloudflare.com/client/v4/graphql"

// CloudflareConfig holds credentials and identifiers for the analytics provider.
type CloudflareConfig struct {
	APIToken         string        `env:"API_TOKEN"`
	ZoneID           string        `env:"ZONE_ID"`
	AccountID        string        `env:"ACCOUNT_ID"`
	Hostname         string        `env:"HOSTNAME"`
	ScreenerHostname string        `env:"SCREENER_HOSTNAME"`
	Endpoint         string        `env:"GRAPHQL_ENDPOINT"  envDefault:"https://api.cloudflare.com/client/v4/graphql"`
	Timeout          time.Duration `env:"HTTP_TIMEOUT"      envDefault:"20s"`
}

// Sanitize trims values and restores defaults for blank settings.
func (c *CloudflareConfig) Sanitize() {
	c.APIToken = strings.TrimSpace(c.APIToken)
	c.ZoneID = strings.TrimSpace(c.ZoneID)
	c.AccountID = strings.TrimSpace(c.AccountID)
	c.Hostname = strings.ToLower(strings.TrimSpace(c.Hostname))
	c.ScreenerHostname = strings.ToLower(strings.TrimSpace(c.ScreenerHostname))

	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = DefaultGraphQLEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
}

// R2Config identifies the object storage bucket reported on by the storage stats endpoint.
type R2Config struct {
	BucketName string `env:"BUCKET_NAME"`
}

// Sanitize trims the bucket name.
func (c *R2Config) Sanitize() {
	c.BucketName = strings.TrimSpace(c.BucketName)
}

// AnalyticsConfig tunes the aggregator.
type AnalyticsConfig struct {
	// MaxConcurrency caps in-flight chunk queries per aggregation.
	MaxConcurrency int `env:"MAX_CONCURRENCY" envDefault:"8"`

	// CacheTTL is how long summaries stay in Redis when caching is enabled.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Sanitize enforces sane floors.
func (c *AnalyticsConfig) Sanitize() {
	if c.MaxConcurrency < 1 {
		c.MaxConcurrency = 1
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
}
