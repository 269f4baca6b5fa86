// Package httpclient provides the outbound HTTP client shared by the
// geolocation and quote-source lookups. Requests are throttled with a
// token bucket and retried with exponential backoff on transient errors.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "MamaSphere-PricingService/1.0"

// Config holds throttle and retry settings for the client.
type Config struct {
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// DefaultConfig returns the default client settings.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:    10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
		MaxRetries:        2,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
	}
}

// Client is an HTTP client with rate limiting and retry logic.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	config     Config
}

// New creates a client with the given settings.
func New(config Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		config:     config,
	}
}

// NewDefault creates a client with default settings.
func NewDefault() *Client {
	return New(DefaultConfig())
}

// RetryError is returned when all retry attempts are exhausted.
type RetryError struct {
	URL        string
	Attempts   int
	LastStatus int
	LastErr    error
}

func (e *RetryError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s after %d attempts", e.URL, e.Attempts)
	if e.LastStatus != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.LastStatus)
	}
	if e.LastErr != nil {
		msg += ": " + e.LastErr.Error()
	}
	return msg
}

func (e *RetryError) Unwrap() error { return e.LastErr }

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read response body: %w", err)
			}
			return body, nil
		}

		resp.Body.Close()
		if !retryableStatus(resp.StatusCode) {
			break
		}
	}

	return nil, &RetryError{
		URL:        url,
		Attempts:   c.config.MaxRetries + 1,
		LastStatus: lastStatus,
		LastErr:    lastErr,
	}
}

// GetJSON performs a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	body, err := c.Get(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// backoff computes the exponential backoff delay for a completed attempt,
// with up to 25% jitter to avoid synchronized retries.
func (c *Client) backoff(attempt int) time.Duration {
	delay := float64(c.config.InitialBackoff) * math.Pow(2, float64(attempt))
	delay = math.Min(delay, float64(c.config.MaxBackoff))
	delay += rand.Float64() * 0.25 * delay
	return time.Duration(delay)
}

// retryableStatus reports whether an HTTP status is worth retrying:
// 429 and 5xx.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}
