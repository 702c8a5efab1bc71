package schema

import "time"

// TimeFormat is the wire representation for timestamps. All serialized
// timestamps are UTC so the round trip preserves ordering to the second.
var TimeFormat = time.RFC3339

// DateFormat is the wire representation for calendar dates.
const DateFormat = "2006-01-02"

// FormatTime renders a timestamp in the wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses a wire-format timestamp back into a point in time.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// DayKey renders the YYYY-MM-DD key for a timestamp's UTC calendar day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// ContributionLevel maps a daily event count to a contribution-graph
// intensity level between 0 and 4.
func ContributionLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 9:
		return 3
	default:
		return 4
	}
}
