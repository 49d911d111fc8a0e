// SPDX-License-Identifier: MIT

// Package validate collects configuration problems so they can be reported together.
package validate

import (
	"cmp"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"slices"
	"strings"

	platformnet "github.com/ManuGH/myrecipe/internal/platform/net"
)

// Error is a single rejected field.
type Error struct {
	Field   string
	Value   any
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// ValidationError is returned by Validator.Err and lists every rejected field.
type ValidationError struct {
	errors []Error
}

// Errors returns the individual failures in the order they were found.
func (e ValidationError) Errors() []Error {
	return e.errors
}

func (e ValidationError) Error() string {
	var b strings.Builder
	for i, err := range e.errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Validator accumulates failures. The zero value is ready to use.
type Validator struct {
	errors []Error
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string, value any) {
	v.errors = append(v.errors, Error{Field: field, Value: value, Message: message})
}

func (v *Validator) addf(field string, value any, format string, args ...any) {
	v.AddError(field, fmt.Sprintf(format, args...), value)
}

// IsValid reports whether nothing has been recorded.
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns the recorded failures.
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err returns a ValidationError snapshot, or nil when valid.
func (v *Validator) Err() error {
	if v.IsValid() {
		return nil
	}
	return ValidationError{errors: slices.Clone(v.errors)}
}

// URL requires an absolute URL with a resolvable host and one of the allowed schemes.
// An empty allowed list accepts any scheme.
func (v *Validator) URL(field, value string, allowedSchemes []string) {
	if value == "" {
		v.AddError(field, "URL cannot be empty", value)
		return
	}
	u, err := url.Parse(value)
	if err != nil {
		v.addf(field, value, "invalid URL: %v", err)
		return
	}
	if u.Hostname() == "" {
		v.AddError(field, "URL must have a host", value)
		return
	}
	if _, err := platformnet.NormalizeHost(u.Hostname()); err != nil {
		v.addf(field, value, "invalid URL host: %v", err)
		return
	}
	if len(allowedSchemes) > 0 && !slices.Contains(allowedSchemes, strings.ToLower(u.Scheme)) {
		v.addf(field, value, "unsupported URL scheme %q (allowed: %v)", u.Scheme, allowedSchemes)
	}
}

// ListenAddr requires host:port. The host may be empty (":8088").
func (v *Validator) ListenAddr(field, addr string) {
	if strings.TrimSpace(addr) == "" {
		v.AddError(field, "listen address cannot be empty", addr)
		return
	}
	_, port, err := net.SplitHostPort(addr)
	switch {
	case err != nil:
		v.addf(field, addr, "invalid listen address: %v", err)
	case port == "":
		v.AddError(field, "listen address must include a port", addr)
	}
}

func between[T cmp.Ordered](v *Validator, field string, value, lo, hi T, verb string) {
	if value >= lo && value <= hi {
		return
	}
	v.addf(field, value, "value must be between "+verb+" and "+verb+", got "+verb, lo, hi, value)
}

// Range requires lo <= value <= hi.
func (v *Validator) Range(field string, value, lo, hi int) {
	between(v, field, value, lo, hi, "%d")
}

// FloatRange requires lo <= value <= hi.
func (v *Validator) FloatRange(field string, value, lo, hi float64) {
	between(v, field, value, lo, hi, "%g")
}

// NonNegative requires value >= 0.
func (v *Validator) NonNegative(field string, value int) {
	if value < 0 {
		v.addf(field, value, "value cannot be negative, got %d", value)
	}
}

// NotEmpty rejects empty and whitespace-only strings.
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// OneOf requires value to be in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.addf(field, value, "value must be one of %v, got %q", allowed, value)
	}
}

// IPOrCIDR requires every non-blank entry to be an address or a prefix.
func (v *Validator) IPOrCIDR(field string, entries []string) {
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, err := netip.ParseAddr(entry); err == nil {
			continue
		}
		if _, err := netip.ParsePrefix(entry); err == nil {
			continue
		}
		v.addf(field, entry, "invalid IP or CIDR %q", entry)
	}
}
