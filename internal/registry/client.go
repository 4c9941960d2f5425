// Package registry issues authenticated read requests against the Companies
// House REST API and normalizes transport and HTTP failures into a small,
// closed error taxonomy.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ownergraph/internal/platform/config"
	"ownergraph/pkg/platform/circuit"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ownergraph_registry_requests_total",
		Help: "Registry API requests by outcome",
	}, []string{"outcome"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ownergraph_registry_request_duration_seconds",
		Help:    "Latency of registry API requests",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	})
)

// Client performs authenticated GETs against the registry. One client is
// shared by all fetchers; it is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *circuit.Breaker
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreaker attaches a circuit breaker that short-circuits calls after
// consecutive transport-level failures, letting one probe through per
// cooldown window so the client recovers once the upstream does.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// New constructs a Client from registry configuration.
func New(cfg config.Registry, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs one authenticated GET for the given path ("/company/123...").
// No retries are performed; every failure is terminal for this one fetch.
// A 404 is ErrNotFound; use GetOptional for sub-resources where 404 means
// "legitimately absent".
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.get(ctx, path)
	requestDuration.Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	return body, err
}

// GetOptional behaves like Get but maps an upstream 404 to a successful
// empty result (nil, nil). The capital endpoint is the canonical user: many
// companies simply have no structured capital data.
func (c *Client) GetOptional(ctx context.Context, path string) (json.RawMessage, error) {
	body, err := c.Get(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return body, err
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		c.warn(ctx, "registry call short-circuited", "path", path)
		return nil, &TransportError{Err: ErrCircuitOpen}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		c.recordFailure()
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		c.warn(ctx, "registry request failed", "path", path, "error", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.recordSuccess()
		if !json.Valid(payload) {
			return nil, &DecodeError{Err: errors.New("response body is not valid JSON")}
		}
		return json.RawMessage(payload), nil
	case resp.StatusCode == http.StatusNotFound:
		c.recordSuccess()
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		c.recordSuccess()
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		// Throttling is upstream policy, not a transport fault; it must not
		// trip the breaker.
		c.recordSuccess()
		return nil, ErrRateLimited
	default:
		if resp.StatusCode >= 500 {
			c.recordFailure()
		} else {
			c.recordSuccess()
		}
		c.warn(ctx, "registry returned unexpected status", "path", path, "status", resp.StatusCode)
		return nil, &StatusError{Status: resp.StatusCode, Body: string(payload)}
	}
}

func (c *Client) recordFailure() {
	if c.breaker == nil {
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		if c.logger != nil {
			c.logger.Warn("registry circuit breaker opened", "breaker", c.breaker.Name())
		}
	}
}

func (c *Client) recordSuccess() {
	if c.breaker == nil {
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		if c.logger != nil {
			c.logger.Info("registry circuit breaker closed", "breaker", c.breaker.Name())
		}
	}
}

func (c *Client) warn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, args...)
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		var se *StatusError
		var te *TransportError
		var de *DecodeError
		switch {
		case errors.As(err, &se):
			return "http_error"
		case errors.As(err, &te):
			return "transport_error"
		case errors.As(err, &de):
			return "decode_error"
		}
		return "error"
	}
}
