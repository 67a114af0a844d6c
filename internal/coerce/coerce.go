// Package coerce turns loosely typed spreadsheet text into JSON literal text.
package coerce

import (
	"math"
	"strconv"
	"strings"
)

const null = "null"

// JSONValue renders v as a JSON literal. Rules apply in order:
// blank or "null" -> null, "true"/"false" -> boolean, text with a '.' that
// parses as a float -> integer truncated toward zero, integer text -> as-is,
// anything else -> trimmed and wrapped in double quotes.
//
// Embedded quotes and backslashes are not escaped.
func JSONValue(v *string) string {
	if isNull(v) {
		return null
	}
	s := *v

	if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
		return strings.ToLower(s)
	}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && finite(f) {
			return truncate(f)
		}
	} else if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}

	return `"` + strings.TrimSpace(s) + `"`
}

// FieldType parses v as a float and truncates it ("0.0" -> "0"). Anything that
// does not parse, including a missing value, becomes "0".
func FieldType(v *string) string {
	if v == nil {
		return "0"
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil || !finite(f) {
		return "0"
	}
	return truncate(f)
}

// QuoteOrNull wraps the trimmed value in quotes, or returns an unquoted null
// when it is blank or "null".
func QuoteOrNull(v *string) string {
	if isNull(v) {
		return null
	}
	return `"` + strings.TrimSpace(*v) + `"`
}

// Quote always wraps the trimmed value in quotes; a missing value becomes "".
func Quote(v *string) string {
	if v == nil {
		return `""`
	}
	return `"` + strings.TrimSpace(*v) + `"`
}

func isNull(v *string) bool {
	if v == nil {
		return true
	}
	s := strings.TrimSpace(*v)
	return s == "" || strings.EqualFold(s, null)
}

// truncate drops the fraction, saturating at the int64 bounds.
func truncate(f float64) string {
	switch {
	case f >= math.MaxInt64:
		return strconv.FormatInt(math.MaxInt64, 10)
	case f <= math.MinInt64:
		return strconv.FormatInt(math.MinInt64, 10)
	}
	return strconv.FormatInt(int64(math.Trunc(f)), 10)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Ptr is a convenience for literal inputs.
func Ptr(s string) *string { return &s }
