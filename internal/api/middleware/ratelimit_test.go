// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_EnforcesLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestLimit: 3, WindowSize: time.Minute})(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "192.168.1.1:12345").Code, "request %d", i+1)
	}

	before := testutil.ToFloat64(rateLimitRejected)
	rec := hit(h, "192.168.1.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	assert.InDelta(t, before+1, testutil.ToFloat64(rateLimitRejected), 0.001)

	assert.Equal(t, http.StatusOK, hit(h, "192.168.1.2:12345").Code, "limits are per client")
}

func TestAPIRateLimit_Disabled(t *testing.T) {
	h := APIRateLimit(APIRateLimitConfig{Enabled: false, RPS: 1})(okHandler())
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1").Code)
	}
}

func TestAPIRateLimit_Whitelist(t *testing.T) {
	h := APIRateLimit(APIRateLimitConfig{
		Enabled:   true,
		RPS:       1,
		Burst:     1,
		Whitelist: []string{"10.1.0.0/16", "192.0.2.7"},
	})(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.1.2.3:1000").Code)
		assert.Equal(t, http.StatusOK, hit(h, "192.0.2.7:1000").Code)
	}

	assert.Equal(t, http.StatusOK, hit(h, "203.0.113.9:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "203.0.113.9:1000").Code)
}

func TestWhitelisted(t *testing.T) {
	allow := parseWhitelist([]string{" 10.0.0.0/8 ", "::1", "garbage", ""})
	assert.Len(t, allow, 2)
	assert.True(t, whitelisted(allow, "10.9.8.7:80"))
	assert.True(t, whitelisted(allow, "[::1]:80"))
	assert.False(t, whitelisted(allow, "11.0.0.1:80"))
	assert.False(t, whitelisted(allow, "not-an-ip"))
	assert.False(t, whitelisted(nil, "10.0.0.1:80"))
}
