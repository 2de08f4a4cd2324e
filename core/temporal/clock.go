package temporal

import (
	"math"
	"regexp"
	"strings"
	"time"

	"consolidator/core/keys"
)

// ClockAnchor is the day times of day are stored on.
var ClockAnchor = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?$`)
	compactPattern  = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})$`)
	meridiemPattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?\s*(AM|PM)$`)
)

// ParseTime converts v into a time of day anchored on ClockAnchor. Candidates
// are tried in order: an existing time, a day fraction in [0,1), H:MM[:SS],
// HHMMSS and H:MM[:SS] AM|PM.
func ParseTime(v any) (time.Time, bool) {
	if t, ok := asTime(v); ok {
		return t, true
	}

	if n, ok := asNumber(v); ok && n >= 0 && n < 1 {
		secs := math.Round(n * 24 * 60 * 60)
		return ClockAnchor.Add(time.Duration(secs) * time.Second), true
	}

	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = keys.CollapseSpaces(s)

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		return buildClock(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := compactPattern.FindStringSubmatch(s); m != nil {
		return buildClock(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := meridiemPattern.FindStringSubmatch(s); m != nil {
		h := atoi(m[1])
		pm := strings.EqualFold(m[4], "PM")
		switch {
		case pm && h < 12:
			h += 12
		case !pm && h == 12:
			h = 0
		}
		return buildClock(h, atoi(m[2]), atoi(m[3]))
	}
	return time.Time{}, false
}

func buildClock(h, m, s int) (time.Time, bool) {
	if h < 0 || h >= 24 || m < 0 || m >= 60 || s < 0 || s >= 60 {
		return time.Time{}, false
	}
	return time.Date(1899, 12, 30, h, m, s, 0, time.UTC), true
}
