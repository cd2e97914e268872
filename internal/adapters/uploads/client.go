// Package uploads talks to the upload CDN's admin API. The CDN only offers
// two operations the core needs: delete-by-key and an existence probe.
package uploads

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"staybook/internal/adapters/observability"
	"staybook/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, apiKey string, rps int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  apiKey,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var ErrUnauthorized = errors.New("uploads: unauthorized")

// Delete removes the asset behind key. An absent key maps to
// domain.ErrNotFound so callers can treat the release as idempotent.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.do(ctx, http.MethodDelete, c.fileURL(key))
	switch {
	case err == nil:
		observability.ObserveAssetRelease("deleted")
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveAssetRelease("absent")
	default:
		observability.ObserveAssetRelease("error")
	}
	return err
}

// Stat probes whether the store holds key.
func (c *Client) Stat(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodHead, c.fileURL(key))
}

func (c *Client) fileURL(key string) string {
	return c.base + "/v1/files/" + url.PathEscape(key)
}

// do performs one API call with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) do(ctx context.Context, method, u string) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, method, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "staybook/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		status := resp.StatusCode
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		observability.ObserveExternal("uploads", method, status, time.Since(start))

		switch status {
		case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
			return nil

		case http.StatusNotFound:
			return domain.ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfterHeader(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("uploads: remote %d", status)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			return fmt.Errorf("uploads: bad status %d for %s %s", status, method, u)
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfterHeader parses Retry-After (seconds or HTTP-date). 0 if absent.
func retryAfterHeader(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles each attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
