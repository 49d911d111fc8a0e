// SPDX-License-Identifier: MIT

package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rateLimitRejected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "myrecipe_ratelimit_rejected_total",
	Help: "Requests rejected by the ingress rate limiter",
})

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	// RequestLimit is the maximum number of requests allowed in the window
	RequestLimit int
	// WindowSize is the time window for rate limiting
	WindowSize time.Duration
	// KeyFunc extracts the rate limit key; nil keys by client IP.
	KeyFunc httprate.KeyFunc
}

// RateLimit creates a sliding-window rate limiter backed by httprate.
// Rejections get a 429 JSON body and a Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByIP
	}
	retryAfter := strconv.Itoa(max(1, int(cfg.WindowSize.Seconds())))

	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowSize,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			rateLimitRejected.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfter)
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limit_exceeded","detail":"Too many requests. Please try again later."}`))
		}),
	)
}

// APIRateLimitConfig is the operator-facing limiter configuration.
type APIRateLimitConfig struct {
	Enabled bool
	// RPS is the sustained per-client rate; Burst raises the per-second ceiling.
	RPS   int
	Burst int
	// Whitelist holds IPs or CIDRs that bypass the limiter.
	Whitelist []string
}

// APIRateLimit limits each client to max(RPS, Burst) requests per one-second
// sliding window. Whitelisted clients are never limited. Disabled configs pass
// requests straight through.
func APIRateLimit(cfg APIRateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limited := RateLimit(RateLimitConfig{
		RequestLimit: max(cfg.RPS, cfg.Burst),
		WindowSize:   time.Second,
	})
	allow := parseWhitelist(cfg.Whitelist)

	return func(next http.Handler) http.Handler {
		guarded := limited(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if whitelisted(allow, r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}

func parseWhitelist(entries []string) []netip.Prefix {
	var out []netip.Prefix
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			out = append(out, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
		}
	}
	return out
}

func whitelisted(allow []netip.Prefix, remoteAddr string) bool {
	if len(allow) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range allow {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
