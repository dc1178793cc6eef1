package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalNumber matches plain decimal and exponent notation. strconv also
// reads hex floats, which the feeds never mean.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber reads a numeric feed value. The feeds mix JSON numbers, numeric
// strings, "None" and empty strings, so the input is untyped. ok is false for
// anything that is not a finite number; callers skip the record in that case.
func ParseNumber(v any) (value float64, ok bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		value = n
	case float32:
		value = float64(n)
	case int:
		value = float64(n)
	case int64:
		value = float64(n)
	case json.Number:
		return parseDecimal(string(n))
	case string:
		return parseDecimal(n)
	default:
		return 0, false
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalNumber.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
