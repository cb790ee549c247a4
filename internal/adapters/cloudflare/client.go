// Package cloudflare talks to the Cloudflare GraphQL Analytics API: the HTTP
// transport with its circuit breaker, query documents, capability discovery,
// and decoding of grouped-dataset responses into the analytics domain model.
package cloudflare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	"github.com/crakhack/crakhack-web/internal/observability/metrics"
	"github.com/crakhack/crakhack-web/internal/ports"
)

// DefaultEndpoint is the public GraphQL Analytics endpoint.
const DefaultEndpoint = "https://api.cloudflare.com/client/v4/graphql"

const (
	defaultTimeout  = 20 * time.Second
	maxResponseBody = 8 << 20
	maxErrorSnippet = 512
	breakerName     = "cloudflare-graphql"
)

var _ ports.GraphQLClient = (*Client)(nil)

// Config captures runtime configuration for the GraphQL client.
type Config struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Collector
}

// Client posts GraphQL documents with bearer authentication.
// Calls pass through a circuit breaker that opens on repeated transport or 5xx failures.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker[any]
	logger   *slog.Logger
	metrics  *metrics.Collector
}

// NewClient constructs a client. An empty token is accepted; calls then fail with
// a configuration error so the process can start without analytics credentials.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasPrefix(endpoint, "https://") && !strings.HasPrefix(endpoint, "http://") {
		return nil, fmt.Errorf("cloudflare endpoint must be an http(s) URL: %q", endpoint)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.Token),
		client:   hc,
		logger:   logger.With("component", "cloudflare"),
		metrics:  cfg.Metrics,
	}
	c.cb = gobreaker.NewCircuitBreaker[any](c.breakerSettings())
	c.metrics.SetBreakerState(breakerName, stateToFloat(gobreaker.StateClosed))
	return c, nil
}

func (c *Client) breakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
			c.metrics.SetBreakerState(name, stateToFloat(to))
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
	}
}

// countsAsFailure reports whether err reflects an unhealthy upstream. GraphQL-level
// errors (including unknown-field probes) and caller cancellation do not count.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUpstreamGraphQL, apperrors.ErrCodeConfigurationMissing:
		return false
	case apperrors.ErrCodeUpstreamHTTP:
		status := apperrors.GetStatus(err)
		return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
	}
	return true
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

type graphQLBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   any            `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Do posts req and returns the decoded data member.
func (c *Client) Do(ctx context.Context, req ports.GraphQLRequest) (any, error) {
	if c.token == "" {
		return nil, apperrors.ConfigurationMissing("CLOUDFLARE_API_TOKEN")
	}

	start := time.Now()
	data, err := c.cb.Execute(func() (any, error) {
		return c.post(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.observe(req.Operation, metrics.ResultRejected, 0, err)
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeUpstreamHTTP,
			Message: "cloudflare api unavailable",
			Cause:   err,
			Status:  http.StatusServiceUnavailable,
		}
	}
	if err != nil {
		err = apperrors.FromContext(err)
		c.observe(req.Operation, metrics.ResultError, time.Since(start), err)
		c.logger.DebugContext(ctx, "graphql call failed", "operation", req.Operation, "error", err)
		return nil, err
	}
	c.observe(req.Operation, metrics.ResultSuccess, time.Since(start), nil)
	return data, nil
}

func (c *Client) observe(op, result string, d time.Duration, err error) {
	c.metrics.ObserveUpstream(metrics.UpstreamMetric{
		Operation: op,
		Result:    result,
		Duration:  d,
		Err:       err,
	})
}

func (c *Client) post(ctx context.Context, in ports.GraphQLRequest) (any, error) {
	body, err := json.Marshal(graphQLBody{Query: in.Query, Variables: in.Variables})
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create graphql request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read graphql response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.UpstreamHTTP(resp.StatusCode, snippet(raw))
	}

	var out graphQLResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, apperrors.UpstreamGraphQL(out.Errors[0].Message)
	}
	return out.Data, nil
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet]
	}
	return s
}
