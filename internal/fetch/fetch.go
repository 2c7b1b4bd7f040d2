// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads remote PDFs for conversion.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 and 503 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const (
	defaultMaxRetries = 3
	defaultMaxBytes   = 100 << 20
	defaultUserAgent  = "pdf2docx"
)

// ErrTooLarge is returned when a download exceeds the configured limit.
var ErrTooLarge = errors.New("download exceeds size limit")

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads rawURL and returns it as a conversion source. The name
// is the last URL path segment and the content type comes from the
// response header.
func Fetch(ctx context.Context, client *http.Client, rawURL string, cfg types.HTTPConfig) (types.Source, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return types.Source{}, fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/pdf, */*;q=0.5")

	resp, err := DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return types.Source{}, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Source{}, fmt.Errorf("fetching %s: HTTP %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > maxBytes {
		return types.Source{}, fmt.Errorf("fetching %s: %w (%d > %d bytes)", rawURL, ErrTooLarge, resp.ContentLength, maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return types.Source{}, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if int64(len(data)) > maxBytes {
		return types.Source{}, fmt.Errorf("fetching %s: %w (%d bytes)", rawURL, ErrTooLarge, maxBytes)
	}

	return types.Source{
		Name:        nameFromURL(resp.Request.URL),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// DoWithRetry executes req and retries on HTTP 429 and 503 with
// exponential backoff starting at RetryBaseDelay. A Retry-After header
// given in seconds replaces the computed delay. When maxRetries is 0 the
// default (3) is used. After exhausting retries the last response is
// returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if d, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			backoff = d
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func retryAfter(v string) (time.Duration, bool) {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

func nameFromURL(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "/" || base == "." || base == "" {
		return u.Host
	}
	return base
}
