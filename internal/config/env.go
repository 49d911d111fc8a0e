// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/myrecipe/internal/log"
	platformnet "github.com/ManuGH/myrecipe/internal/platform/net"
)

var errInvalidBool = errors.New("not a boolean")

// envValue returns the parsed value of key, or def when the variable is
// unset, blank or unparsable. Unparsable values are logged as warnings.
func envValue[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}

	logger := log.WithComponent("config")
	v, err := parse(raw)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", redactEnv(key, raw)).
			Err(err).
			Msg("ignoring invalid environment value")
		return def
	}
	logger.Debug().
		Str("key", key).
		Str("value", redactEnv(key, raw)).
		Str("source", "environment").
		Msg("config value from environment")
	return v
}

// redactEnv keeps credentials out of the logs.
func redactEnv(key, raw string) string {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "token"), strings.Contains(k, "password"), strings.Contains(k, "secret"):
		return "[redacted]"
	case strings.HasSuffix(k, "_url"), strings.HasSuffix(k, "_endpoint"):
		return platformnet.SanitizeURL(raw)
	}
	return raw
}

// ParseString returns the value of key, or defaultValue when it is unset or empty.
func ParseString(key, defaultValue string) string {
	return envValue(key, defaultValue, func(s string) (string, error) { return s, nil })
}

// ParseInt returns key as a base-10 int.
func ParseInt(key string, defaultValue int) int {
	return envValue(key, defaultValue, func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	})
}

// ParseDuration returns key parsed with time.ParseDuration ("5s", "250ms").
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return envValue(key, defaultValue, func(s string) (time.Duration, error) {
		return time.ParseDuration(strings.TrimSpace(s))
	})
}

// ParseBool accepts true/false, 1/0 and yes/no in any case.
func ParseBool(key string, defaultValue bool) bool {
	return envValue(key, defaultValue, func(s string) (bool, error) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, errInvalidBool
	})
}

// ParseFloat returns key as a float64.
func ParseFloat(key string, defaultValue float64) float64 {
	return envValue(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	})
}

// ParseStringList reads a comma separated list. Blank entries are dropped.
func ParseStringList(key string, defaultValue []string) []string {
	return envValue(key, defaultValue, func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	})
}
