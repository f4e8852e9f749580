package fires

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseSize limits the service response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// RetryConfig holds retry configuration for fire-service requests.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per request.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the maximum backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns sensible retry defaults for fire-service requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       500 * time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Second,
	}
}

// Client talks to the remote fire-record service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryConfig RetryConfig
	logger      *slog.Logger
	metrics     *Metrics
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithMetrics sets the request metrics collector.
func WithMetrics(m *Metrics) ClientOption {
	return func(client *Client) {
		client.metrics = m
	}
}

// NewClient creates a client for the fire-record service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("fires client: invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		retryConfig: DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// List fetches every fire record known to the service.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, "list", http.MethodGet, "/fires", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Get fetches a single fire record by ID. A missing record is reported as
// ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	var record Record
	if err := c.do(ctx, "get", http.MethodGet, "/fires/"+url.PathEscape(id), nil, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Create registers a new fire record with the service and returns the stored
// record. An empty ID is assigned client-side before sending.
func (c *Client) Create(ctx context.Context, record Record) (Record, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := record.Validate(); err != nil {
		return Record{}, NewFatalError(err)
	}

	var stored Record
	if err := c.do(ctx, "create", http.MethodPost, "/fires", &record, &stored); err != nil {
		return Record{}, err
	}
	return stored, nil
}

// Update replaces an existing fire record and returns the stored record.
func (c *Client) Update(ctx context.Context, record Record) (Record, error) {
	if record.ID == "" {
		return Record{}, NewFatalError(fmt.Errorf("fire record update: ID is required"))
	}
	if err := record.Validate(); err != nil {
		return Record{}, NewFatalError(err)
	}

	var stored Record
	if err := c.do(ctx, "update", http.MethodPut, "/fires/"+url.PathEscape(record.ID), &record, &stored); err != nil {
		return Record{}, err
	}
	return stored, nil
}

// do issues one logical request with retry on transient failures.
func (c *Client) do(ctx context.Context, operation, method, path string, in, out any) error {
	backoff := c.retryConfig.BackoffBase
	var lastErr error

	for attempt := 1; attempt <= c.retryConfig.MaxAttempts; attempt++ {
		started := time.Now()
		err := c.doOnce(ctx, method, path, in, out)
		c.metrics.observe(operation, outcomeOf(err), time.Since(started))

		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return err
		}

		if attempt < c.retryConfig.MaxAttempts {
			c.logger.Debug("Fire service request failed, retrying",
				"operation", operation,
				"attempt", attempt,
				"max_attempts", c.retryConfig.MaxAttempts,
				"backoff", backoff,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(jitter(backoff)):
			}

			backoff = time.Duration(float64(backoff) * c.retryConfig.BackoffMultiplier)
			if backoff > c.retryConfig.MaxBackoff {
				backoff = c.retryConfig.MaxBackoff
			}
		}
	}

	return fmt.Errorf("fire service %s after %d attempts: %w", operation, c.retryConfig.MaxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return NewFatalError(fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return NewFatalError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures and timeouts are worth another attempt.
		return NewTransientError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return NewTransientError(fmt.Errorf("%s %s: read response: %w", method, path, err))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return NewFatalError(fmt.Errorf("%s %s: decode response: %w", method, path, err))
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return NewFatalError(fmt.Errorf("%s %s: %w", method, path, ErrNotFound))
	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		return NewTransientError(fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(data, 200)))
	default:
		return NewFatalError(fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(data, 200)))
	}
}

// jitter randomizes a backoff within ±25% to avoid synchronized retries.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	delta := float64(d) * 0.25
	return time.Duration(float64(d) - delta + rand.Float64()*2*delta)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsTransient(err):
		return "transient_error"
	default:
		return "fatal_error"
	}
}

func truncate(data []byte, n int) string {
	s := strings.TrimSpace(string(data))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
