package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"

	"studybuddy/internal/logx"
)

// HTTPError carries status/body for non-2xx responses.
// It lets callers decide if/when to retry.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 900))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// RetryConfig controls retry behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// If true, retry any 5xx.
	Retry5xx bool

	// Extra statuses to retry (e.g. 429, 408).
	RetryStatuses map[int]bool
}

// DefaultRetryConfig suits small interactive calls: a few quick attempts
// rather than the long backoff a batch sync would tolerate.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   300 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Retry5xx:    true,
		RetryStatuses: map[int]bool{
			http.StatusTooManyRequests: true, // 429
			http.StatusRequestTimeout:  true, // 408
			http.StatusTooEarly:        true, // 425
		},
	}
}

func (cfg RetryConfig) withDefaults() RetryConfig {
	def := DefaultRetryConfig()
	if cfg.MaxAttempts <= 0 {
		return def
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	if cfg.RetryStatuses == nil {
		cfg.RetryStatuses = def.RetryStatuses
	}
	return cfg
}

// Client wraps an *http.Client with retries, an optional outbound rate limit
// and transparent brotli decoding.
type Client struct {
	HTTP    *http.Client
	Retry   RetryConfig
	Limiter *rate.Limiter // nil means unlimited
	Log     logx.Logger

	// AcceptBrotli advertises "br" and decodes brotli bodies.
	AcceptBrotli bool
}

// New returns a client with the given per-request timeout and at most
// ratePerSec requests per second (<= 0 disables limiting).
func New(timeout time.Duration, ratePerSec int, log logx.Logger) *Client {
	var lim *rate.Limiter
	if ratePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)
	}
	return &Client{
		HTTP:         &http.Client{Timeout: timeout},
		Retry:        DefaultRetryConfig(),
		Limiter:      lim,
		Log:          log,
		AcceptBrotli: true,
	}
}

// Do executes a request built by buildReq, retrying transient failures.
// It always reads the full body (even on error) so the connection can be reused.
func (c *Client) Do(ctx context.Context, buildReq func(context.Context) (*http.Request, error)) (*http.Response, []byte, error) {
	cfg := c.Retry.withDefaults()
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, nil, err
			}
		}

		req, err := buildReq(ctx)
		if err != nil {
			return nil, nil, err
		}
		if c.AcceptBrotli && req.Header.Get("Accept-Encoding") == "" {
			req.Header.Set("Accept-Encoding", "br")
		}

		resp, err := hc.Do(req)
		if err != nil {
			if isRetryableNetErr(err) && attempt < cfg.MaxAttempts {
				lastErr = err
				c.Log.Debug("retrying request", logx.String("url", req.URL.String()), logx.Int("attempt", attempt), logx.Err(err))
				if err := sleepBackoff(ctx, attempt, cfg.BaseDelay, cfg.MaxDelay, 0); err != nil {
					return nil, nil, err
				}
				continue
			}
			return nil, nil, err
		}

		body, readErr := readBody(resp)
		if readErr != nil {
			if isRetryableNetErr(readErr) && attempt < cfg.MaxAttempts {
				lastErr = readErr
				if err := sleepBackoff(ctx, attempt, cfg.BaseDelay, cfg.MaxDelay, 0); err != nil {
					return nil, nil, err
				}
				continue
			}
			return resp, body, readErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, body, nil
		}

		herr := &HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       body,
		}

		if isRetryableStatus(resp.StatusCode, cfg) && attempt < cfg.MaxAttempts {
			lastErr = herr
			c.Log.Debug("retrying request", logx.String("url", herr.URL), logx.Int("status", herr.StatusCode), logx.Int("attempt", attempt))
			if err := sleepBackoff(ctx, attempt, cfg.BaseDelay, cfg.MaxDelay, ParseRetryAfter(resp)); err != nil {
				return nil, nil, err
			}
			continue
		}

		return resp, body, herr
	}

	if lastErr != nil {
		return nil, nil, lastErr
	}
	return nil, nil, errors.New("httpx: request failed")
}

// GetJSON issues a GET to url and unmarshals the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	_, body, err := c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json parse error: %w body=%s", err, snippet(body, 900))
	}
	return nil
}

// readBody drains and closes the body, undoing brotli content encoding.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return raw, err
	}
	if !strings.EqualFold(strings.TrimSpace(resp.Header.Get("Content-Encoding")), "br") {
		return raw, nil
	}
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return raw, fmt.Errorf("httpx: brotli decode: %w", err)
	}
	resp.Header.Del("Content-Encoding")
	return decoded, nil
}

func isRetryableStatus(code int, cfg RetryConfig) bool {
	if cfg.RetryStatuses != nil && cfg.RetryStatuses[code] {
		return true
	}
	if cfg.Retry5xx && code >= 500 && code <= 599 {
		return true
	}
	return false
}

func sleepBackoff(ctx context.Context, attempt int, base, max time.Duration, retryAfter time.Duration) error {
	sleep := retryAfter
	if sleep <= 0 {
		sleep = base * time.Duration(1<<(attempt-1))
		if sleep > max {
			sleep = max
		}
		// jitter 0..200ms
		sleep += time.Duration(rand.IntN(200)) * time.Millisecond
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isRetryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "broken pipe") || strings.Contains(msg, "eof")
}

// ParseRetryAfter parses Retry-After header (seconds or HTTP date).
// Returns 0 when header is missing/invalid.
func ParseRetryAfter(resp *http.Response) time.Duration {
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			return 0
		}
		return d
	}
	return 0
}
