package diversion

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeNumber coerces a loosely typed measure into a finite float64.
// Anything that cannot be read as a finite number (nil, "", "abc", NaN, Inf)
// becomes 0: reported sheets are hand-maintained and a bad cell must count
// as "no contribution", never abort an aggregation.
func NormalizeNumber(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		return parseLoose(v.String())
	case string:
		return parseLoose(v)
	default:
		return 0
	}
}

func parseLoose(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
