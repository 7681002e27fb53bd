package aggregation

import (
	"fmt"
	"strings"
	"time"
)

// Resolution selects the calendar bucket size used when rolling
// observations up into a time series.
type Resolution int

const (
	// Daily buckets observations by calendar date.
	Daily Resolution = iota
	// Weekly buckets observations by calendar week. Buckets are
	// labelled by the Sunday that ends the week, so every timestamp
	// maps to the Sunday on or after its calendar date.
	Weekly
	// Monthly buckets observations by calendar month, labelled by the
	// first day of the month.
	Monthly
)

// Resolutions lists all supported resolutions in ascending bucket size.
var Resolutions = []Resolution{Daily, Weekly, Monthly}

// String returns the lowercase name of the resolution
func (r Resolution) String() string {
	switch r {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// ParseResolution converts a string into a Resolution
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown resolution: %q", s)
	}
}

// Bucket maps a timestamp to its bucket label date at this resolution.
// Labels are normalized to midnight UTC so that points from different
// time zones land in the same calendar bucket.
func (r Resolution) Bucket(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	switch r {
	case Weekly:
		// Sunday timestamps already sit on their label.
		offset := (7 - int(date.Weekday())) % 7
		return date.AddDate(0, 0, offset)
	case Monthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	default:
		return date
	}
}
