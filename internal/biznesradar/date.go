package biznesradar

import (
	"strings"
	"time"
)

// DateLayout is the timestamp format used on listing pages and in the digest.
const DateLayout = "2006-01-02 15:04:05"

// ParseDate parses a listing timestamp such as "2025-08-18 09:44:22".
// Anything that does not match DateLayout yields ok == false.
func ParseDate(raw string) (t time.Time, ok bool) {
	trimmed := strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, false
	}
	// time.Parse accepts a fractional second after "05" even when the layout has none
	if t.Format(DateLayout) != trimmed {
		return time.Time{}, false
	}
	return t, true
}
