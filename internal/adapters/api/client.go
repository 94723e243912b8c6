package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 2
	defaultBackoffBase = 500 * time.Millisecond
	maxResponseBytes   = 8 << 20
)

// ClientConfig configures an upstream client
type ClientConfig struct {
	// Name labels logs and metrics ("weather", "faa", ...)
	Name        string
	BaseURL     string
	Timeout     time.Duration
	RatePerSec  float64
	Burst       int
	MaxRetries  int
	BackoffBase time.Duration
	UserAgent   string

	// Headers sent with every request (API keys)
	Headers map[string]string

	// Circuit breaker: open after BreakerFailures consecutive failures for BreakerCooldown
	BreakerFailures int
	BreakerCooldown time.Duration
}

// Client is a rate limited, retrying, circuit-broken HTTP client for the public
// aviation data feeds. Responses are decoded as JSON or returned raw.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	userAgent   string
	headers     map[string]string
	name        string
	clock       shared.Clock
}

// NewClient creates a client; zero config values use the defaults.
// If clock is nil, uses RealClock.
func NewClient(cfg ClientConfig, clock shared.Clock) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 2
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if cfg.BreakerFailures <= 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = time.Minute
	}
	if cfg.Name == "" {
		cfg.Name = "upstream"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "aeroroute/1.0"
	}

	breaker := NewCircuitBreaker(cfg.BreakerFailures, cfg.BreakerCooldown, clock)
	name := cfg.Name
	breaker.OnStateChange(func(_, to CircuitState) {
		metrics.RecordCircuitState(name, int(to))
	})

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		breaker:     breaker,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		userAgent:   cfg.UserAgent,
		headers:     cfg.Headers,
		name:        cfg.Name,
		clock:       clock,
	}
}

// BaseURL returns the configured upstream root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Breaker exposes the circuit breaker state for health reporting
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// GetJSON issues GET baseURL+path?query and decodes the JSON body into result.
// 204 No Content leaves result untouched.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result interface{}) error {
	body, status, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if status == http.StatusNoContent || len(body) == 0 || result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// Get issues GET baseURL+path?query through the breaker and returns the raw body
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		body   []byte
		status int
	)
	err := c.breaker.Call(func() error {
		var reqErr error
		body, status, reqErr = c.request(ctx, target)
		return reqErr
	})
	return body, status, err
}

// addJitter adds random jitter to a duration to avoid thundering herd
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}

// request performs the GET with rate limiting and exponential backoff retries
func (c *Client) request(ctx context.Context, target string) ([]byte, int, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limiter error: %w", err)
		}
		metrics.RecordRateLimitWait(c.name, time.Since(waitStart).Seconds())

		reqStart := time.Now()
		body, status, err := c.do(ctx, target)
		metrics.RecordUpstreamRequest(c.name, status, time.Since(reqStart).Seconds())
		if err == nil {
			return body, status, nil
		}

		var retryable *retryableError
		if !errors.As(err, &retryable) {
			return nil, status, err
		}
		lastErr = err

		if attempt >= c.maxRetries {
			break
		}
		metrics.RecordUpstreamRetry(c.name, retryable.reason())
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		// server-provided Retry-After is used without jitter
		delay := retryable.retryAfter
		if delay == 0 {
			delay = addJitter(c.backoffBase * time.Duration(1<<attempt))
		}
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
			return nil, 0, fmt.Errorf("retry in %s would outlive the request deadline (last error: %v): %w",
				delay, lastErr, context.DeadlineExceeded)
		}
		if err := c.clock.Sleep(ctx, delay); err != nil {
			return nil, 0, fmt.Errorf("context cancelled: %w", err)
		}
	}

	return nil, 0, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) do(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, 0, &retryableError{message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, resp.StatusCode, &retryableError{
			message:    "rate limited (429)",
			retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= 500:
		return nil, resp.StatusCode, &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, resp.StatusCode, fmt.Errorf("upstream error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	return body, resp.StatusCode, nil
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

func (e *retryableError) reason() string {
	switch {
	case strings.HasPrefix(e.message, "rate limited"):
		return "rate_limited"
	case strings.HasPrefix(e.message, "server error"):
		return "server_error"
	default:
		return "network_error"
	}
}

// ConfigFromUpstream maps the shared upstream settings onto a ClientConfig
func ConfigFromUpstream(name string, u config.UpstreamConfig) ClientConfig {
	return ClientConfig{
		Name:        name,
		BaseURL:     u.BaseURL,
		Timeout:     u.Timeout,
		RatePerSec:  float64(u.RateLimit.Requests),
		Burst:       u.RateLimit.Burst,
		MaxRetries:  u.Retry.MaxAttempts,
		BackoffBase: u.Retry.BackoffBase,
	}
}
