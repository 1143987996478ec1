package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateFormat is the canonical calendar-date layout used across the planner.
const DateFormat = "2006-01-02"

// ClockFormat is the canonical clock-time layout for session boundaries.
const ClockFormat = "15:04"

// ToMinutes converts an "HH:MM" clock time to minutes from midnight.
// Malformed input is a caller contract violation and yields 0.
func ToMinutes(clock string) int {
	t, err := time.Parse(ClockFormat, clock)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// ToClock converts minutes from midnight to an "HH:MM" clock time.
func ToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateOf formats a time as a canonical calendar date.
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a canonical calendar date at UTC midnight.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateFormat, date)
}

// AddDays returns the calendar date n days after the given date.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return DateOf(t.AddDate(0, 0, n))
}

// DaysBetween returns the whole days from one date to another. The result is
// negative when 'to' precedes 'from'.
func DaysBetween(from, to string) int {
	a, err := ParseDate(from)
	if err != nil {
		return 0
	}
	b, err := ParseDate(to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

// WeekdayOf returns the weekday of a canonical calendar date.
func WeekdayOf(date string) time.Weekday {
	t, err := ParseDate(date)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// Interval is a half-open [Start, End) range in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// Minutes returns the interval length.
func (i Interval) Minutes() int {
	return i.End - i.Start
}

// Overlaps reports whether two intervals share any time.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// MergeIntervals sorts intervals by start and folds overlapping or touching
// ranges into a minimal non-overlapping list.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}
