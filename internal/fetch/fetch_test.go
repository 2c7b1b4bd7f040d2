// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.pdf"))
	assert.True(t, IsURL("http://localhost:8080/x"))
	assert.False(t, IsURL("ftp://example.com/a.pdf"))
	assert.False(t, IsURL("/tmp/a.pdf"))
	assert.False(t, IsURL("report.pdf"))
	assert.False(t, IsURL("https://"))
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7 body"))
	}))
	defer ts.Close()

	src, err := Fetch(context.Background(), ts.Client(), ts.URL+"/papers/report.pdf", types.HTTPConfig{UserAgent: "pdf2docx-test"})
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", src.Name)
	assert.Equal(t, "application/pdf", src.ContentType)
	assert.Equal(t, []byte("%PDF-1.7 body"), src.Data)
	assert.Equal(t, "pdf2docx-test", gotUA)
}

func TestFetch_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		switch n {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.Write([]byte("%PDF"))
		}
	}))
	defer ts.Close()

	src, err := Fetch(context.Background(), ts.Client(), ts.URL+"/a.pdf", types.HTTPConfig{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), src.Data)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL+"/missing.pdf", types.HTTPConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetch_TooLarge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL+"/big.pdf", types.HTTPConfig{MaxBytes: 16})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDoWithRetry_ExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 2)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryAfter(t *testing.T) {
	d, ok := retryAfter("3")
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, d)

	_, ok = retryAfter("Wed, 21 Oct 2015 07:28:00 GMT")
	assert.False(t, ok)
	_, ok = retryAfter("")
	assert.False(t, ok)
}
