package ui

import (
	"math"
	"strconv"
	"strings"
)

// formatRating renders r the way a default number-to-string conversion does:
// the shortest decimal that round-trips, with exponent form only for very
// large or very small magnitudes. No rounding is applied.
func formatRating(r float64) string {
	switch {
	case math.IsNaN(r):
		return "NaN"
	case math.IsInf(r, 1):
		return "Infinity"
	case math.IsInf(r, -1):
		return "-Infinity"
	}
	abs := math.Abs(r)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return trimExponent(strconv.FormatFloat(r, 'g', -1, 64))
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv puts on one-digit exponents
// ("1e-07" becomes "1e-7").
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || len(s) < i+4 || s[i+2] != '0' {
		return s
	}
	return s[:i+2] + s[i+3:]
}
