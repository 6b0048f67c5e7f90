package benchmark

import (
	"encoding/json"
	"strconv"
	"strings"
)

// multipliers recognized as a trailing suffix on numeric strings.
var suffixMultipliers = map[byte]float64{
	'K': 1_000,
	'M': 1_000_000,
	'B': 1_000_000_000,
}

// ParseNumeric extracts a float from a metric value that may arrive as a
// number or as a formatted string such as "$1.5M", "50%", or "1,000".
// Returns false when no numeric interpretation exists.
func ParseNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		return parseNumericString(n)
	default:
		return 0, false
	}
}

func parseNumericString(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	mult := 1.0
	last := s[len(s)-1]
	if m, ok := suffixMultipliers[upperByte(last)]; ok {
		mult = m
		s = strings.TrimSpace(s[:len(s)-1])
		if s == "" {
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * mult, true
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
