package temporal

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"consolidator/core/keys"
)

// Serial day counts accepted in date columns.
const (
	MinSerial = 1000
	MaxSerial = 50000
)

// SerialEpoch is the day before serial day 1.
var SerialEpoch = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)

var (
	dmyPattern      = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	isoPattern      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dmyClockPattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})\s+(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?`)
	dmyAnywhere     = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
)

// ParseDate converts v into a calendar date. Candidates are tried in order:
// an existing time, a serial day count, D/M/YYYY, YYYY-M-D and
// D/M/YYYY H:MM[:SS]. Every candidate must rebuild the exact digits it was
// read from.
func ParseDate(v any) (time.Time, bool) {
	if t, ok := asTime(v); ok {
		return t, true
	}

	raw, isString := v.(string)
	t, ok := dateCandidate(v)
	if !ok || !isString {
		return t, ok
	}
	return crossCheck(raw, t)
}

func dateCandidate(v any) (time.Time, bool) {
	if n, ok := asNumber(v); ok {
		if n >= MinSerial && n <= MaxSerial {
			return fromSerial(n), true
		}
		return time.Time{}, false
	}

	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = keys.CollapseSpaces(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[3]), atoi(m[2]), atoi(m[1]), 0, 0, 0)
	}
	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0, 0, 0)
	}
	if m := dmyClockPattern.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[3]), atoi(m[2]), atoi(m[1]), atoi(m[4]), atoi(m[5]), atoi(m[6]))
	}
	return time.Time{}, false
}

// crossCheck discards a result whose day differs from a D/M/YYYY date written
// in raw, falling back to the literal digits when they form a valid date.
func crossCheck(raw string, t time.Time) (time.Time, bool) {
	m := dmyAnywhere.FindStringSubmatch(raw)
	if m == nil || t.Day() == atoi(m[1]) {
		return t, true
	}
	return buildDate(atoi(m[3]), atoi(m[2]), atoi(m[1]), 0, 0, 0)
}

// fromSerial adds a serial day count and its day fraction to SerialEpoch.
func fromSerial(n float64) time.Time {
	days := math.Floor(n)
	ms := math.Round((n - days) * 24 * 60 * 60 * 1000)
	return SerialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}

// buildDate returns the UTC instant of the given components, or false when any
// component would roll over into another field.
func buildDate(year, month, day, hour, minute, second int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}
	return t, true
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}

// asNumber reads numbers and numeric strings. NaN and infinities are rejected.
func asNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case int32:
		n = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// atoi parses a regexp digit group; an unmatched optional group is 0.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
