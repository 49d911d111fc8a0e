// Package httpx builds the outbound HTTP clients used by myrecipe.
package httpx

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultClientTimeout          = 5 * time.Second
	defaultDialTimeout            = 3 * time.Second
	defaultResponseHeaderTimeout  = 3 * time.Second
	upstreamResponseHeaderTimeout = 10 * time.Second
	defaultIdleConnTimeout        = 30 * time.Second
	defaultExpectContinueTimeout  = 1 * time.Second
	defaultMaxIdleConns           = 16
	defaultMaxIdleConnsPerHost    = 4
)

// NewClient returns a hardened HTTP client for ops probes such as the
// healthcheck subcommand. A non-positive timeout selects the default.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(capped(timeout, defaultDialTimeout), capped(timeout, defaultResponseHeaderTimeout)),
	}
}

// NewUpstreamClient returns the client used to reach the recipe source.
// A zero timeout sets no client, dial, TLS or header deadline, leaving the
// request context as the only bound. Requests are traced through otelhttp.
func NewUpstreamClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}
	return &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(upstreamTransport(timeout),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "upstream " + r.Method
			}),
		),
	}
}

func upstreamTransport(timeout time.Duration) *http.Transport {
	if timeout <= 0 {
		return newTransport(0, 0)
	}
	return newTransport(capped(timeout, defaultDialTimeout), capped(timeout, upstreamResponseHeaderTimeout))
}

func newTransport(dialTimeout, responseHeaderTimeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          defaultMaxIdleConns,
		MaxIdleConnsPerHost:   defaultMaxIdleConnsPerHost,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   dialTimeout,
		ResponseHeaderTimeout: responseHeaderTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
	}
}

func capped(d, limit time.Duration) time.Duration {
	if d > limit {
		return limit
	}
	return d
}
