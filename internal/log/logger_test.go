// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test", Version: "v0.0.0-test"})
	t.Cleanup(func() { Configure(Config{}) })
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestWithComponentAnnotatesEntries(t *testing.T) {
	buf := captureLogs(t)

	l := WithComponent("recipes")
	l.Info().Str(FieldEvent, "test.event").Msg("hello")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "recipes", lines[0][FieldComponent])
	assert.Equal(t, "test", lines[0]["service"])
	assert.Equal(t, "v0.0.0-test", lines[0]["version"])
	assert.Equal(t, "test.event", lines[0][FieldEvent])
}

func TestDeriveAppliesBuilder(t *testing.T) {
	buf := captureLogs(t)

	l := Derive(func(c *zerolog.Context) { *c = c.Int(FieldRecipeID, 7) })
	l.Info().Msg("derived")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 7, lines[0][FieldRecipeID])
}

func TestMiddlewareLogsRequest(t *testing.T) {
	buf := captureLogs(t)

	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ContextWithRequestID(context.Background(), "rid-42"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "request.handled", entry[FieldEvent])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, http.StatusTeapot, entry[FieldStatus])
	assert.EqualValues(t, len("short and stout"), entry[FieldBytes])
	assert.Equal(t, "rid-42", entry[FieldRequestID])
	assert.Equal(t, "/", entry[FieldPath])
}
