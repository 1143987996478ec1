package domain

import "time"

// PlanMode selects the task-ordering policy used by plan generation.
type PlanMode int

const (
	PlanModeEven PlanMode = iota
	PlanModeBalanced
	PlanModeEisenhower
)

func (m PlanMode) String() string {
	switch m {
	case PlanModeEven:
		return "even"
	case PlanModeBalanced:
		return "balanced"
	case PlanModeEisenhower:
		return "eisenhower"
	default:
		return "unknown"
	}
}

// ParsePlanMode maps a stored mode name back to its PlanMode.
func ParsePlanMode(s string) PlanMode {
	switch s {
	case "balanced":
		return PlanModeBalanced
	case "eisenhower":
		return PlanModeEisenhower
	default:
		return PlanModeEven
	}
}

// MaxSingleSessionHours caps how long one merged or planned session may run.
const MaxSingleSessionHours = 4.0

// Settings carries the user's planning preferences. It is a plain value type
// owned by the caller; every engine pass receives a fresh copy.
type Settings struct {
	WorkDays             []time.Weekday
	DailyAvailableHours  float64
	BufferDays           int
	StudyWindowStartHour int
	StudyWindowEndHour   int
	MinSessionMinutes    int
	PlanMode             PlanMode
}

// DefaultSettings returns the planning defaults applied before a user has
// saved preferences.
func DefaultSettings() Settings {
	return Settings{
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday,
		},
		DailyAvailableHours:  4,
		BufferDays:           0,
		StudyWindowStartHour: 8,
		StudyWindowEndHour:   22,
		MinSessionMinutes:    30,
		PlanMode:             PlanModeEven,
	}
}

// IsWorkDay reports whether the weekday is eligible for scheduling.
func (s Settings) IsWorkDay(d time.Weekday) bool {
	for _, wd := range s.WorkDays {
		if wd == d {
			return true
		}
	}
	return false
}

// WindowStartMinute returns the study window opening in minutes from midnight.
func (s Settings) WindowStartMinute() int {
	return s.StudyWindowStartHour * 60
}

// WindowEndMinute returns the study window closing in minutes from midnight.
func (s Settings) WindowEndMinute() int {
	return s.StudyWindowEndHour * 60
}

// MaxSessionHours returns the longest session the planner will produce for a
// single block of work.
func (s Settings) MaxSessionHours() float64 {
	if s.DailyAvailableHours < MaxSingleSessionHours {
		return s.DailyAvailableHours
	}
	return MaxSingleSessionHours
}
