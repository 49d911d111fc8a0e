// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"time"
)

// LastFetchChecker reports the outcome of the most recent recipe fetch.
// A failed fetch degrades the service without making it unready: the page
// still renders, only with an empty grid.
type LastFetchChecker struct {
	lastFetch func() (at time.Time, err error)
}

// NewLastFetchChecker creates a checker. lastFetch returns the zero time when
// no fetch has completed yet.
func NewLastFetchChecker(lastFetch func() (time.Time, error)) *LastFetchChecker {
	return &LastFetchChecker{lastFetch: lastFetch}
}

func (c *LastFetchChecker) Name() string {
	return "recipes_upstream"
}

func (c *LastFetchChecker) Check(_ context.Context) CheckResult {
	at, err := c.lastFetch()

	if at.IsZero() {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "no fetch yet",
		}
	}

	if err != nil {
		return CheckResult{
			Status:  StatusDegraded,
			Error:   err.Error(),
			Message: "last fetch failed",
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Message: "last fetch succeeded at " + at.UTC().Format(time.RFC3339),
	}
}
