package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/metrics"
	"github.com/satheeshds/invoice-viewer/payment"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients are limited independently")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(limiterIdleTTL + time.Minute)
	rl.Allow("b")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")
}

func TestRateLimiter_SweepsAtMostOncePerInterval(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }
	rl.clients["stale"] = &clientLimiter{lastSeen: now.Add(-2 * limiterIdleTTL)}
	rl.lastSweep = now.Add(-limiterSweepEvery / 2)

	rl.Allow("a")
	assert.Contains(t, rl.clients, "stale")

	now = now.Add(limiterSweepEvery)
	rl.Allow("a")
	assert.NotContains(t, rl.clients, "stale")
}

func newInstrumentedServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	fsys := fstest.MapFS{
		"betty25.json": {Data: []byte(strings.Replace(baseDoc, "%s", "", 1)), ModTime: documentMtime},
	}
	opts = append([]Option{
		WithClock(func() time.Time { return beforeEvent }),
		WithLogger(zerolog.Nop()),
	}, opts...)
	s := NewServer(loader.New(loader.NewFileSource(fsys)), payment.NewStub(0, payment.WithLogger(zerolog.Nop())), opts...)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestPaymentRateLimit(t *testing.T) {
	ts := newInstrumentedServer(t, WithPaymentRateLimit(0.001, 1))

	resp, err := http.PostForm(ts.URL+"/betty25/pay", url.Values{"kind": {"deposit"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/v1/invoices/betty25/payments", "application/json", strings.NewReader(`{"kind": "full"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))

	// Reads are never limited.
	resp, err = http.Get(ts.URL + "/betty25")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func postPaymentFrom(t *testing.T, ts *httptest.Server, forwardedFor string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/invoices/betty25/payments", strings.NewReader(`{"kind": "deposit"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", forwardedFor)
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestPaymentRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	ts := newInstrumentedServer(t, WithPaymentRateLimit(0.001, 5))

	var statuses []int
	for i := 0; i < 10; i++ {
		statuses = append(statuses, postPaymentFrom(t, ts, fmt.Sprintf("203.0.113.%d", i+1)))
	}
	assert.Equal(t, []int{201, 201, 201, 201, 201}, statuses[:5])
	for _, status := range statuses[5:] {
		assert.Equal(t, http.StatusTooManyRequests, status)
	}
}

func TestPaymentRateLimit_TrustedProxy(t *testing.T) {
	ts := newInstrumentedServer(t, WithPaymentRateLimit(0.001, 1), WithTrustedProxy(true))

	assert.Equal(t, http.StatusCreated, postPaymentFrom(t, ts, "203.0.113.1"))
	assert.Equal(t, http.StatusCreated, postPaymentFrom(t, ts, "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postPaymentFrom(t, ts, "203.0.113.1"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newInstrumentedServer(t, WithMetrics(metrics.New()))

	for _, path := range []string{"/betty25", "/ghost"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}
	resp, err := http.PostForm(ts.URL+"/betty25/pay", url.Values{"kind": {"deposit"}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `invoice_viewer_invoice_loads_total{result="loaded"} 2`)
	assert.Contains(t, body, `invoice_viewer_invoice_loads_total{result="not_found"} 1`)
	assert.Contains(t, body, `invoice_viewer_payments_total{kind="deposit",result="success"} 1`)
	assert.Contains(t, body, `route="/{invoiceId}"`)
}
