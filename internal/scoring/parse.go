package scoring

import (
	"math"
	"strconv"
	"strings"
)

// ParsePercentage extracts a numeric value from a raw record field.
// Numbers pass through unchanged. Strings are trimmed and accepted only
// when they start with an ASCII digit (or a minus sign followed by one)
// and parse as a float; this rejects prose answers such as "Unknown" or
// "N/A" without treating them as zero. Everything else, including
// booleans and nulls, reports no value.
//
// Despite the name the result is not clamped: callers that need a ratio
// divide by 100 themselves, and out-of-range inputs are preserved.
func ParsePercentage(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		if !startsNumeric(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func startsNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9'
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
