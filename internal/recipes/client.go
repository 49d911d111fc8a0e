// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ManuGH/myrecipe/internal/platform/httpx"
	"github.com/ManuGH/myrecipe/internal/telemetry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "myrecipe"
	maxBodyBytes     = 8 << 20
	maxErrorBody     = 256
	tracerName       = "myrecipe.recipes"
)

// Client fetches the recipe collection from a single fixed endpoint.
// It performs exactly one GET per call: no caching and no retries.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	last       atomic.Pointer[FetchResult]
}

// FetchResult is the outcome of the most recent completed fetch.
type FetchResult struct {
	At       time.Time
	Duration time.Duration
	Count    int
	Err      error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the outbound client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each fetch. Zero leaves the caller's context as the only deadline.
// It applies to whichever outbound client is configured, in any option order;
// a client passed through WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d < 0 {
			d = 0
		}
		c.timeout = d
	}
}

// WithRateLimit caps outbound fetches at rps with the given burst, shared by
// every caller of the Client. A fetch waits for budget within its context.
// rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New returns a Client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		userAgent:  defaultUserAgent,
		httpClient: httpx.NewUpstreamClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Endpoint returns the configured collection URL.
func (c *Client) Endpoint() string { return c.endpoint }

// LastFetch returns the most recent completed fetch, or nil before the first one.
func (c *Client) LastFetch() *FetchResult {
	return c.last.Load()
}

// FetchRecipes performs one GET and decodes the body as a Collection.
// Every error satisfies errors.Is(err, ErrFetch).
func (c *Client) FetchRecipes(ctx context.Context) (Collection, error) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "recipes.fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	coll, status, err := c.fetch(ctx)
	elapsed := time.Since(start)

	recordFetch(err, len(coll.Recipes), elapsed)
	c.last.Store(&FetchResult{At: start, Duration: elapsed, Count: len(coll.Recipes), Err: err})

	span.SetAttributes(telemetry.HTTPAttributes(http.MethodGet, routeOf(c.endpoint), c.endpoint, status)...)
	span.SetAttributes(telemetry.FetchAttributes(outcome(err), len(coll.Recipes))...)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(telemetry.ErrorAttributes(outcome(err))...)
		span.SetStatus(codes.Error, err.Error())
		return Collection{}, err
	}
	span.SetStatus(codes.Ok, "")
	return coll, nil
}

func (c *Client) fetch(ctx context.Context) (Collection, int, error) {
	const op = "fetch collection"

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Collection{}, 0, &FetchError{Sentinel: ErrUpstreamUnavailable, Op: "wait for upstream budget", Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Collection{}, 0, &FetchError{Sentinel: ErrUpstreamUnavailable, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Collection{}, 0, &FetchError{Sentinel: ErrUpstreamUnavailable, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Collection{}, resp.StatusCode, &FetchError{
			Sentinel: ErrUpstreamStatus,
			Op:       op,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(snippet)),
		}
	}

	var coll Collection
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&coll); err != nil {
		return Collection{}, resp.StatusCode, &FetchError{
			Sentinel: ErrBadResponse,
			Op:       op,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("decode body: %w", err),
		}
	}
	return coll, resp.StatusCode, nil
}

func routeOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
