// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipes

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrFetch is matched by every failure returned from FetchRecipes.
	ErrFetch = errors.New("recipes: fetch failed")

	ErrUpstreamUnavailable = errors.New("upstream: host unreachable or transport failure")
	ErrUpstreamStatus      = errors.New("upstream: non-success status")
	ErrBadResponse         = errors.New("upstream: invalid response format or malformed data")
)

// FetchError carries the classification and context of a failed fetch.
type FetchError struct {
	Sentinel error
	Op       string
	Status   int
	Body     string
	Err      error // lower-level cause (net or json error)
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("recipes: %s: %v", e.Op, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes ErrFetch, the classifying sentinel and the cause.
func (e *FetchError) Unwrap() []error {
	errs := []error{ErrFetch}
	if e.Sentinel != nil {
		errs = append(errs, e.Sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// outcome is the metric/span label for err.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrUpstreamStatus):
		return "status"
	case errors.Is(err, ErrBadResponse):
		return "bad_response"
	default:
		return "unavailable"
	}
}
