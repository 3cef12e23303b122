package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceFloat turns a scalar from an untrusted LLM payload into a float64.
// Strings may carry "kcal" or "g" suffixes. The parse is total: anything
// unusable yields 0 with defaulted=true so callers can report it instead of
// silently swallowing it.
func CoerceFloat(x any) (value float64, defaulted bool) {
	switch v := x.(type) {
	case nil:
		return 0, true
	case float64:
		return v, false
	case float32:
		return float64(v), false
	case int:
		return float64(v), false
	case int64:
		return float64(v), false
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, true
		}
		return f, false
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		s = strings.ReplaceAll(s, "kcal", "")
		s = strings.ReplaceAll(s, "g", "")
		s = strings.TrimSpace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, true
		}
		return f, false
	default:
		return 0, true
	}
}

// CoerceString stringifies a scalar, defaulting anything non-string to "".
func CoerceString(x any) (value string, defaulted bool) {
	s, ok := x.(string)
	if !ok {
		return "", x != nil
	}
	return s, false
}

// CoerceInt is CoerceFloat truncated, used for positions.
func CoerceInt(x any) (value int, defaulted bool) {
	f, d := CoerceFloat(x)
	return int(f), d
}

// Truncate caps a string at max bytes (plan item names are capped at 256).
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
