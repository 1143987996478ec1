package domain

import (
	"errors"
	"strings"
	"time"

	shared "github.com/Rosalinda-art/studyflow/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrEmptyCommitmentTitle = errors.New("commitment title cannot be empty")

// Occurrence is a per-date time override for a recurring commitment.
type Occurrence struct {
	StartTime string
	EndTime   string
}

// FixedCommitment is an external busy interval unrelated to tasks: either
// recurring on a set of weekdays or pinned to explicit dates, with optional
// per-date overrides and deletions.
type FixedCommitment struct {
	shared.BaseAggregateRoot
	title         string
	startTime     string // "HH:MM"
	endTime       string // "HH:MM"
	recurring     bool
	daysOfWeek    []time.Weekday
	specificDates []string
	modified      map[string]Occurrence
	deleted       map[string]bool
}

// NewRecurringCommitment creates a commitment that applies on a weekday set.
func NewRecurringCommitment(title, startTime, endTime string, daysOfWeek []time.Weekday) (*FixedCommitment, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyCommitmentTitle
	}
	if ToMinutes(endTime) <= ToMinutes(startTime) {
		return nil, ErrInvalidSessionRange
	}
	return &FixedCommitment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		title:             title,
		startTime:         startTime,
		endTime:           endTime,
		recurring:         true,
		daysOfWeek:        daysOfWeek,
		modified:          make(map[string]Occurrence),
		deleted:           make(map[string]bool),
	}, nil
}

// NewOneOffCommitment creates a commitment pinned to explicit dates.
func NewOneOffCommitment(title, startTime, endTime string, dates []string) (*FixedCommitment, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyCommitmentTitle
	}
	if ToMinutes(endTime) <= ToMinutes(startTime) {
		return nil, ErrInvalidSessionRange
	}
	return &FixedCommitment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		title:             title,
		startTime:         startTime,
		endTime:           endTime,
		specificDates:     dates,
		modified:          make(map[string]Occurrence),
		deleted:           make(map[string]bool),
	}, nil
}

// Getters

func (c *FixedCommitment) Title() string              { return c.title }
func (c *FixedCommitment) StartTime() string          { return c.startTime }
func (c *FixedCommitment) EndTime() string            { return c.endTime }
func (c *FixedCommitment) IsRecurring() bool          { return c.recurring }
func (c *FixedCommitment) DaysOfWeek() []time.Weekday { return c.daysOfWeek }
func (c *FixedCommitment) SpecificDates() []string    { return c.specificDates }
func (c *FixedCommitment) ModifiedOccurrences() map[string]Occurrence {
	return c.modified
}
func (c *FixedCommitment) DeletedOccurrences() map[string]bool {
	return c.deleted
}

// OverrideOccurrence replaces the time range on one date.
func (c *FixedCommitment) OverrideOccurrence(date, startTime, endTime string) {
	c.modified[date] = Occurrence{StartTime: startTime, EndTime: endTime}
	c.Touch()
}

// DeleteOccurrence removes the commitment on one date.
func (c *FixedCommitment) DeleteOccurrence(date string) {
	c.deleted[date] = true
	c.Touch()
}

// AppliesOn returns the busy interval this commitment occupies on the given
// date, after applying per-date overrides and deletions.
func (c *FixedCommitment) AppliesOn(date string) (Interval, bool) {
	if c.deleted[date] {
		return Interval{}, false
	}

	applies := false
	if c.recurring {
		weekday := WeekdayOf(date)
		for _, wd := range c.daysOfWeek {
			if wd == weekday {
				applies = true
				break
			}
		}
	} else {
		for _, d := range c.specificDates {
			if d == date {
				applies = true
				break
			}
		}
	}
	if !applies {
		return Interval{}, false
	}

	start, end := c.startTime, c.endTime
	if occ, ok := c.modified[date]; ok {
		start, end = occ.StartTime, occ.EndTime
	}
	return Interval{Start: ToMinutes(start), End: ToMinutes(end)}, true
}

// TimeOverlaps reports whether two commitments' clock ranges intersect,
// ignoring their date domains.
func (c *FixedCommitment) TimeOverlaps(other *FixedCommitment) bool {
	mine := Interval{Start: ToMinutes(c.startTime), End: ToMinutes(c.endTime)}
	theirs := Interval{Start: ToMinutes(other.startTime), End: ToMinutes(other.endTime)}
	return mine.Overlaps(theirs)
}

// RehydrateFixedCommitment recreates a commitment from persisted state.
func RehydrateFixedCommitment(
	id uuid.UUID,
	title, startTime, endTime string,
	recurring bool,
	daysOfWeek []time.Weekday,
	specificDates []string,
	modified map[string]Occurrence,
	deleted map[string]bool,
	createdAt, updatedAt time.Time,
) *FixedCommitment {
	if modified == nil {
		modified = make(map[string]Occurrence)
	}
	if deleted == nil {
		deleted = make(map[string]bool)
	}
	return &FixedCommitment{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(
			shared.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		title:         title,
		startTime:     startTime,
		endTime:       endTime,
		recurring:     recurring,
		daysOfWeek:    daysOfWeek,
		specificDates: specificDates,
		modified:      modified,
		deleted:       deleted,
	}
}
