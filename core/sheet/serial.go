package sheet

import (
	"math"
	"time"
)

const msPerDay = 24 * 60 * 60 * 1000

var (
	// ClockAnchor is the day time-of-day values are anchored on.
	ClockAnchor = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

	// serial 1 is 1900-01-01; serials from 61 on absorb the phantom 1900-02-29.
	earlyEpoch = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	leapFix    = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
)

// FromSerial converts a 1900-system serial of a date-formatted cell into a time.
// Values below 1 are times of day anchored on ClockAnchor.
func FromSerial(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	offset := time.Duration(math.Round(frac*msPerDay)) * time.Millisecond

	switch {
	case days < 1:
		return ClockAnchor.Add(offset)
	case days < 61:
		return earlyEpoch.AddDate(0, 0, int(days)).Add(offset)
	default:
		return ClockAnchor.AddDate(0, 0, int(days)).Add(offset)
	}
}

// ToSerial converts t into a 1900-system serial. Times before 1900 are treated
// as times of day and yield only the day fraction.
func ToSerial(t time.Time) float64 {
	t = t.UTC()
	if t.Year() < 1900 {
		clock := t.Sub(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
		return float64(clock.Milliseconds()) / msPerDay
	}
	serial := float64(t.Sub(ClockAnchor).Milliseconds()) / msPerDay
	if t.Before(leapFix) {
		serial--
	}
	return serial
}

// IsClockOnly reports whether t is a time of day anchored before 1900.
func IsClockOnly(t time.Time) bool {
	return t.UTC().Year() < 1900
}

// HasClock reports whether t carries a non-zero time of day.
func HasClock(t time.Time) bool {
	t = t.UTC()
	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0
}
