// Package calc holds the numeric and date primitives shared by every
// efficiency view. Accumulation always happens in full float64 precision;
// rounding is applied only when a row is formatted.
package calc

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ToNumber coerces a loosely typed value to float64. Absent or invalid
// input (nil, empty or non-numeric strings, NaN, infinities) yields 0.
func ToNumber(x any) float64 {
	switch v := x.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case decimal.Decimal:
		return v.InexactFloat64()
	case json.Number:
		return parseNumber(string(v))
	case string:
		return parseNumber(v)
	case *string:
		if v == nil {
			return 0
		}
		return parseNumber(*v)
	case *float64:
		if v == nil {
			return 0
		}
		return finite(*v)
	default:
		return 0
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// RoundFixed rounds x to the given number of decimals, half away from zero.
// Non-finite input yields 0.
func RoundFixed(x float64, decimals int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(decimals).InexactFloat64()
}

// Round2 is RoundFixed with the default two decimals used by every report
func Round2(x float64) float64 {
	return RoundFixed(x, 2)
}

// Mean returns the arithmetic mean of the samples and false when empty
func Mean(samples []int) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	total := 0
	for _, s := range samples {
		total += s
	}
	return float64(total) / float64(len(samples)), true
}
