// Package client provides the users API HTTP client with response
// caching, error classification, and structured logging.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rarchitgupta/userfetch/pkg/cache"
	"github.com/rarchitgupta/userfetch/pkg/fetch"
)

// Prometheus metrics for users API operations.
var (
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fetch_requests_total",
		Help: "Total users API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	fetchRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fetch_request_duration_seconds",
		Help:    "Users API request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fetch_errors_total",
		Help: "Total users API errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Client is the users API client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the users API, without trailing slash.
	BaseURL string

	// User-Agent header sent with every request.
	UserAgent string

	// Redis client for the response cache. Nil disables caching.
	Redis *redis.Client

	// Timeout for a single HTTP request.
	Timeout time.Duration

	// CacheTTL is the fallback TTL when the server sends no usable
	// Expires header.
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://jsonplaceholder.typicode.com",
		UserAgent: "userfetch/0.1.0",
		Timeout:   30 * time.Second,
		CacheTTL:  60 * time.Second,
	}
}

// New creates a new users API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 60 * time.Second
	}

	logger := log.With().Str("component", "users-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cacheManager,
		config: cfg,
		logger: logger,
	}, nil
}

// Do performs an HTTP request with caching and error accounting.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		fetchRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check cache
	cacheKey := cache.Key{
		Endpoint:    endpoint,
		QueryParams: req.URL.Query(),
	}

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
		if entry != nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Dur("ttl", entry.TTL()).
				Msg("Serving response from cache")
			fetchRequestsTotal.WithLabelValues(endpoint, "cached").Inc()
			return cache.EntryToResponse(entry), nil
		}
	}

	// Step 2: Set request headers
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	// Step 3: Execute HTTP request
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing users API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		fetchErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		fetchRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("users api request: %w", err)
	}

	fetchRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	// Step 4: Account HTTP errors (the caller decides how to handle them)
	if resp.StatusCode >= 400 {
		errClass := classifyStatus(resp.StatusCode)
		fetchErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Users API request error")

		return resp, nil
	}

	// Step 5: Update cache on success
	if c.cache != nil && resp.StatusCode == http.StatusOK {
		entry, err := cache.ResponseToEntry(resp, c.config.CacheTTL)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache response")
		} else {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Dur("ttl", entry.TTL()).
				Msg("Cached response")
		}
	}

	return resp, nil
}

// Get performs a GET request to a users API endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.config.BaseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// FetchRecord fetches the user record for one identifier. It implements
// fetch.RecordFetcher: one round trip (cache aside), the parsed JSON
// object on 2xx, and a nil record with nil error on any other status.
// Transport and decode failures are returned as errors.
func (c *Client) FetchRecord(ctx context.Context, id int) (fetch.Record, error) {
	resp, err := c.Get(ctx, fmt.Sprintf("/users/%d", id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug().
			Int("id", id).
			Int("status", resp.StatusCode).
			Msg("Record not available")
		return nil, nil
	}

	var record fetch.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode record %d: %w", id, err)
	}

	return record, nil
}

// classifyStatus categorizes an HTTP error status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	default:
		return ErrorClassServer
	}
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
