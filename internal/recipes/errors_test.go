package recipes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError_Error(t *testing.T) {
	err := &FetchError{Sentinel: ErrUpstreamStatus, Op: "fetch collection", Status: 502, Body: "Bad Gateway"}
	assert.Equal(t, "recipes: fetch collection: upstream: non-success status (HTTP 502): Bad Gateway", err.Error())

	cause := errors.New("dial tcp: refused")
	err = &FetchError{Sentinel: ErrUpstreamUnavailable, Op: "fetch collection", Err: cause}
	assert.Equal(t, "recipes: fetch collection: upstream: host unreachable or transport failure: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrFetch)
	assert.NotErrorIs(t, err, ErrBadResponse)
}

func TestFetchError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("mount: %w", &FetchError{Sentinel: ErrBadResponse, Op: "fetch collection"})
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestOutcome(t *testing.T) {
	tests := map[string]error{
		"success":      nil,
		"canceled":     &FetchError{Sentinel: ErrUpstreamUnavailable, Err: context.Canceled},
		"timeout":      &FetchError{Sentinel: ErrUpstreamUnavailable, Err: context.DeadlineExceeded},
		"status":       &FetchError{Sentinel: ErrUpstreamStatus},
		"bad_response": &FetchError{Sentinel: ErrBadResponse},
		"unavailable":  &FetchError{Sentinel: ErrUpstreamUnavailable},
	}
	for want, err := range tests {
		assert.Equal(t, want, outcome(err))
	}
}
