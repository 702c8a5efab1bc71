package contract

import (
	"time"

	"github.com/contriboard/contriboard/schema"
)

// DayStart truncates a point in time to the start of its UTC calendar day.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodRange computes the inclusive date range for a reporting period
// ending today. Week is the trailing 7 calendar days; month and year use
// calendar arithmetic rather than fixed day counts.
func PeriodRange(period schema.Period, now time.Time) (start, end time.Time) {
	end = DayStart(now)
	switch period {
	case schema.MonthPeriod:
		start = end.AddDate(0, -1, 0)
	case schema.YearPeriod:
		start = end.AddDate(-1, 0, 0)
	default: // WeekPeriod
		start = end.AddDate(0, 0, -6)
	}
	return start, end
}

// RangeBounds converts an inclusive date range into half-open Unix-second
// bounds suitable for filtering occured_at columns: [startOfStartDay, startOfDayAfterEndDay).
func RangeBounds(start, end time.Time) (int64, int64) {
	return DayStart(start).Unix(), DayStart(end).AddDate(0, 0, 1).Unix()
}

// DaySequence returns every YYYY-MM-DD key in the inclusive date range,
// ascending. This is what lets a sparkline render without gaps.
func DaySequence(start, end time.Time) []string {
	first := DayStart(start)
	last := DayStart(end)

	var days []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(schema.DateFormat))
	}
	return days
}
