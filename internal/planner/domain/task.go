package domain

import (
	"errors"
	"strings"
	"time"

	shared "github.com/Rosalinda-art/studyflow/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle        = errors.New("task title cannot be empty")
	ErrNegativeEstimate  = errors.New("estimated hours cannot be negative")
	ErrTaskAlreadyDone   = errors.New("task is already completed")
)

// urgencyHorizonDays is how close a deadline must be for a task to count as
// urgent in the Eisenhower sense.
const urgencyHorizonDays = 3

// TaskStatus represents the task lifecycle state.
type TaskStatus int

const (
	TaskStatusPending TaskStatus = iota
	TaskStatusCompleted
	TaskStatusArchived
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusPending:
		return "pending"
	case TaskStatusCompleted:
		return "completed"
	case TaskStatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// ParseTaskStatus maps a stored status name back to its TaskStatus.
func ParseTaskStatus(s string) TaskStatus {
	switch s {
	case "completed":
		return TaskStatusCompleted
	case "archived":
		return TaskStatusArchived
	default:
		return TaskStatusPending
	}
}

// Frequency is an optional cadence hint for how often a task wants sessions.
type Frequency int

const (
	FrequencyFlexible Frequency = iota
	FrequencyDaily
	FrequencyThreeWeekly
	FrequencyWeekly
)

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyThreeWeekly:
		return "3x-week"
	case FrequencyWeekly:
		return "weekly"
	default:
		return "flexible"
	}
}

// ParseFrequency maps a stored frequency name back to its Frequency.
func ParseFrequency(s string) Frequency {
	switch s {
	case "daily":
		return FrequencyDaily
	case "3x-week":
		return FrequencyThreeWeekly
	case "weekly":
		return FrequencyWeekly
	default:
		return FrequencyFlexible
	}
}

// Quadrant classifies a task by importance and urgency.
type Quadrant int

const (
	ImportantUrgent Quadrant = iota
	ImportantNotUrgent
	NotImportantUrgent
	NotImportantNotUrgent
)

// Task represents a unit of study work with a deadline. The engine only reads
// tasks, except for the per-pass RemainingHours it attaches.
type Task struct {
	shared.BaseAggregateRoot
	title           string
	estimatedHours  float64
	deadline        string // canonical calendar date
	important       bool
	status          TaskStatus
	frequency       Frequency
	minBlockMinutes int

	// remainingHours is ephemeral: recomputed by the accountant before every
	// generation or redistribution pass, never persisted or cached across calls.
	remainingHours float64
}

// NewTask creates a new pending task.
func NewTask(title string, estimatedHours float64, deadline string, important bool) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if estimatedHours < 0 {
		return nil, ErrNegativeEstimate
	}

	t := &Task{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		title:             title,
		estimatedHours:    estimatedHours,
		deadline:          deadline,
		important:         important,
		status:            TaskStatusPending,
		frequency:         FrequencyFlexible,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title))

	return t, nil
}

// Getters

func (t *Task) Title() string           { return t.title }
func (t *Task) EstimatedHours() float64 { return t.estimatedHours }
func (t *Task) Deadline() string        { return t.deadline }
func (t *Task) IsImportant() bool       { return t.important }
func (t *Task) Status() TaskStatus      { return t.status }
func (t *Task) Frequency() Frequency    { return t.frequency }
func (t *Task) MinBlockMinutes() int    { return t.minBlockMinutes }
func (t *Task) RemainingHours() float64 { return t.remainingHours }
func (t *Task) IsPending() bool         { return t.status == TaskStatusPending }

// SetFrequency sets the cadence hint.
func (t *Task) SetFrequency(f Frequency) {
	t.frequency = f
	t.Touch()
}

// SetMinBlockMinutes sets the minimum block hint.
func (t *Task) SetMinBlockMinutes(minutes int) {
	t.minBlockMinutes = minutes
	t.Touch()
}

// SetRemainingHours attaches the per-pass outstanding hours.
func (t *Task) SetRemainingHours(hours float64) {
	t.remainingHours = hours
}

// Complete marks the task as completed.
func (t *Task) Complete() error {
	if t.status == TaskStatusCompleted {
		return ErrTaskAlreadyDone
	}
	t.status = TaskStatusCompleted
	t.Touch()
	t.AddDomainEvent(NewTaskCompleted(t.ID()))
	return nil
}

// DaysUntilDeadline returns whole days from today until the deadline,
// negative when the deadline has passed.
func (t *Task) DaysUntilDeadline(today string) int {
	return DaysBetween(today, t.deadline)
}

// BufferedDeadline returns the deadline pulled in by the configured buffer.
func (t *Task) BufferedDeadline(bufferDays int) string {
	return AddDays(t.deadline, -bufferDays)
}

// IsUrgent reports whether the deadline falls within the urgency horizon.
func (t *Task) IsUrgent(today string) bool {
	return t.DaysUntilDeadline(today) <= urgencyHorizonDays
}

// QuadrantAsOf classifies the task by importance and urgency.
func (t *Task) QuadrantAsOf(today string) Quadrant {
	urgent := t.IsUrgent(today)
	switch {
	case t.important && urgent:
		return ImportantUrgent
	case t.important:
		return ImportantNotUrgent
	case urgent:
		return NotImportantUrgent
	default:
		return NotImportantNotUrgent
	}
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id uuid.UUID,
	title string,
	estimatedHours float64,
	deadline string,
	important bool,
	status TaskStatus,
	frequency Frequency,
	minBlockMinutes int,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(shared.RehydrateBaseEntity(id, createdAt, updatedAt)),
		title:             title,
		estimatedHours:    estimatedHours,
		deadline:          deadline,
		important:         important,
		status:            status,
		frequency:         frequency,
		minBlockMinutes:   minBlockMinutes,
	}
}
