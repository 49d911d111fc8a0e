// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRecipeID  = "recipe_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// HTTP fields
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldRemoteAddr = "remote_addr"
	FieldDuration   = "duration"
	FieldBytes      = "bytes"

	// Upstream fields
	FieldUpstreamURL = "upstream_url"
	FieldRecipes     = "recipes"
)
