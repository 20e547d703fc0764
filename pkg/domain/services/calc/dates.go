package calc

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const millisPerDay = 86400000

// DisplayDateLayout is the DD-MM-YYYY form used in every report row
const DisplayDateLayout = "02-01-2006"

// MonthKeyLayout produces YYYY-MM keys that sort chronologically as strings
const MonthKeyLayout = "2006-01"

// MissingDateLabel is rendered in place of an absent date
const MissingDateLabel = "Sin Fecha"

// DaysBetween returns the whole number of days from earlier to later,
// rounded to the nearest day and clamped at zero.
func DaysBetween(later, earlier time.Time) int {
	diff := float64(later.Sub(earlier).Milliseconds()) / millisPerDay
	days := int(math.Floor(diff + 0.5))
	if days < 0 {
		return 0
	}
	return days
}

// FormatDisplayDate renders t as DD-MM-YYYY in UTC
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return MissingDateLabel
	}
	return t.UTC().Format(DisplayDateLayout)
}

// MonthKey renders t as YYYY-MM in UTC
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts a native time.Time or an ISO-8601 string. Empty input
// yields the zero time without error.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, nil
		}
		return *d, nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date %q (expected ISO-8601)", d)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", v)
	}
}
