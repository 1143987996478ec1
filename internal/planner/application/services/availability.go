package services

import (
	"math"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// FreeWindow is an open stretch inside the study window of one day.
type FreeWindow struct {
	Start         string
	End           string
	DurationHours float64
}

// DayFreeWindows computes the free time windows on a date inside the
// configured study window. Busy time comes from the date's non-skipped
// sessions and from every commitment applicable to that date. A locked day
// has zero availability to the rest of the engine.
func DayFreeWindows(
	date string,
	plans domain.PlanSet,
	commitments []*domain.FixedCommitment,
	settings domain.Settings,
) []FreeWindow {
	plan := plans.Get(date)
	if plan != nil && plan.IsLocked() {
		return []FreeWindow{}
	}

	busy := make([]domain.Interval, 0)
	if plan != nil {
		for _, s := range plan.Sessions() {
			if s.Status() == domain.SessionSkipped {
				continue
			}
			busy = append(busy, s.TimeRange())
		}
	}
	for _, c := range commitments {
		if iv, ok := c.AppliesOn(date); ok {
			busy = append(busy, iv)
		}
	}

	windowStart := settings.WindowStartMinute()
	windowEnd := settings.WindowEndMinute()
	minLen := settings.MinSessionMinutes

	windows := make([]FreeWindow, 0)
	cursor := windowStart
	for _, iv := range domain.MergeIntervals(busy) {
		if iv.End <= cursor {
			continue
		}
		if iv.Start >= windowEnd {
			break
		}
		if gapEnd := iv.Start; gapEnd-cursor >= minLen {
			windows = append(windows, newFreeWindow(cursor, gapEnd))
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if windowEnd-cursor >= minLen {
		windows = append(windows, newFreeWindow(cursor, windowEnd))
	}

	return windows
}

// SlotMatch is a concrete date and time range able to hold a requested block.
type SlotMatch struct {
	Date  string
	Start string
	End   string
}

// FindNextSlot scans forward day by day from fromDate, skipping non-work
// weekdays, locked days, and excludeDate, and returns the first window able
// to hold the requested hours, truncated to exactly that length. The search
// gives up after maxDays.
func FindNextSlot(
	hours float64,
	fromDate string,
	maxDays int,
	excludeDate string,
	plans domain.PlanSet,
	commitments []*domain.FixedCommitment,
	settings domain.Settings,
) (SlotMatch, bool) {
	for offset := 0; offset < maxDays; offset++ {
		date := domain.AddDays(fromDate, offset)
		if date == excludeDate {
			continue
		}
		if !settings.IsWorkDay(domain.WeekdayOf(date)) {
			continue
		}
		if plans.IsLockedDay(date) {
			continue
		}

		for _, w := range DayFreeWindows(date, plans, commitments, settings) {
			if w.DurationHours+hoursEps < hours {
				continue
			}
			start := domain.ToMinutes(w.Start)
			return SlotMatch{
				Date:  date,
				Start: w.Start,
				End:   domain.ToClock(start + minutesOf(hours)),
			}, true
		}
	}
	return SlotMatch{}, false
}

func newFreeWindow(start, end int) FreeWindow {
	return FreeWindow{
		Start:         domain.ToClock(start),
		End:           domain.ToClock(end),
		DurationHours: float64(end-start) / 60,
	}
}

func minutesOf(hours float64) int {
	return int(math.Round(hours * 60))
}
