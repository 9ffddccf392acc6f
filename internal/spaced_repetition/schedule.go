package spaced_repetition

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of calendar dates
const DateLayout = "2006-01-02"

// SteadyInterval is the review cadence in days once the milestones are exhausted
const SteadyInterval = 60

// Milestones are the day offsets since creation at which a topic is reviewed
var Milestones = []int{0, 1, 3, 7, 21, 30, 45, 60}

// IsDueAfter reports whether a topic created the given number of days ago is due
func IsDueAfter(days int) bool {
	if days < 0 {
		return false
	}
	for _, m := range Milestones {
		if days == m {
			return true
		}
	}
	return days%SteadyInterval == 0
}

// IsDue reports whether a topic created on creationDate is due on today
func IsDue(creationDate, today time.Time) bool {
	return IsDueAfter(DaysBetween(creationDate, today))
}

// DaysBetween returns the whole calendar days from `from` to `to`, both taken as UTC dates
func DaysBetween(from, to time.Time) int {
	f := Truncate(from)
	t := Truncate(to)
	return int(t.Sub(f).Hours() / 24)
}

// Truncate drops the time of day, keeping the UTC calendar date
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a stored YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate formats a time as a stored YYYY-MM-DD date
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysSince parses a stored date and returns the days elapsed until today
func DaysSince(date string, today time.Time) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return DaysBetween(d, today), nil
}
