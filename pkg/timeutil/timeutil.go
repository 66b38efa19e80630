// Package timeutil provides calendar-day helpers for deadlines.
// All calendar arithmetic happens in UTC so a date never shifts with the host timezone.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDate is the dd/mm/yyyy layout used for deadlines.
const FormatDate = "02/01/2006"

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Date creates a UTC midnight time with the given date.
// Out-of-range values are normalised the same way time.Date does.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the start of the day (00:00:00) of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from t1 to t2.
func DaysBetween(t1, t2 time.Time) int {
	a1 := StartOfDay(t1)
	a2 := StartOfDay(t2)
	return int(a2.Sub(a1).Hours() / 24)
}

// FormatDueIn describes how far away a deadline is, e.g. "due today", "due in 3 days", "overdue by 1 day".
func FormatDueIn(days int) string {
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days > 1:
		return fmt.Sprintf("due in %d days", days)
	case days == -1:
		return "overdue by 1 day"
	default:
		return fmt.Sprintf("overdue by %d days", -days)
	}
}
