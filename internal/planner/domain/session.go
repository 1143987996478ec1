package domain

import (
	"errors"
	"time"

	shared "github.com/Rosalinda-art/studyflow/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrInvalidSessionRange = errors.New("session end time must be after start time")

// SessionStatus represents the lifecycle state of a scheduled session.
type SessionStatus int

const (
	SessionScheduled SessionStatus = iota
	SessionCompleted
	SessionSkipped
	SessionMissed
	SessionRescheduled
)

func (s SessionStatus) String() string {
	switch s {
	case SessionScheduled:
		return "scheduled"
	case SessionCompleted:
		return "completed"
	case SessionSkipped:
		return "skipped"
	case SessionMissed:
		return "missed"
	case SessionRescheduled:
		return "rescheduled"
	default:
		return "unknown"
	}
}

// ParseSessionStatus maps a stored status name back to its SessionStatus.
func ParseSessionStatus(s string) SessionStatus {
	switch s {
	case "completed":
		return SessionCompleted
	case "skipped":
		return SessionSkipped
	case "missed":
		return SessionMissed
	case "rescheduled":
		return SessionRescheduled
	default:
		return SessionScheduled
	}
}

// Session is one scheduled block of work on a task within a single day.
// A session is locked iff the StudyPlan holding it is locked; lock state is a
// property of the day, not the session.
type Session struct {
	shared.BaseEntity
	taskID         uuid.UUID
	sessionNumber  int
	startTime      string // "HH:MM"
	endTime        string // "HH:MM"
	allocatedHours float64
	status         SessionStatus
	// done is a completion flag independent of status, kept for compatibility
	// with the external "mark done" collaborator.
	done bool

	// Redistribution provenance, set when a session is moved.
	originalDate  string
	originalTime  string
	rescheduledAt *time.Time
}

// NewSession creates a scheduled session for a task.
func NewSession(taskID uuid.UUID, sessionNumber int, startTime, endTime string, allocatedHours float64) (*Session, error) {
	if ToMinutes(endTime) <= ToMinutes(startTime) {
		return nil, ErrInvalidSessionRange
	}
	return &Session{
		BaseEntity:     shared.NewBaseEntity(),
		taskID:         taskID,
		sessionNumber:  sessionNumber,
		startTime:      startTime,
		endTime:        endTime,
		allocatedHours: allocatedHours,
		status:         SessionScheduled,
	}, nil
}

// Getters

func (s *Session) TaskID() uuid.UUID         { return s.taskID }
func (s *Session) SessionNumber() int        { return s.sessionNumber }
func (s *Session) StartTime() string         { return s.startTime }
func (s *Session) EndTime() string           { return s.endTime }
func (s *Session) AllocatedHours() float64   { return s.allocatedHours }
func (s *Session) Status() SessionStatus     { return s.status }
func (s *Session) IsDone() bool              { return s.done }
func (s *Session) OriginalDate() string      { return s.originalDate }
func (s *Session) OriginalTime() string      { return s.originalTime }
func (s *Session) RescheduledAt() *time.Time { return s.rescheduledAt }

// StartMinute returns the start time in minutes from midnight.
func (s *Session) StartMinute() int { return ToMinutes(s.startTime) }

// EndMinute returns the end time in minutes from midnight.
func (s *Session) EndMinute() int { return ToMinutes(s.endTime) }

// TimeRange returns the busy interval this session occupies.
func (s *Session) TimeRange() Interval {
	return Interval{Start: s.StartMinute(), End: s.EndMinute()}
}

// IsSettled reports whether the session no longer needs placement work: it is
// done, completed, or skipped.
func (s *Session) IsSettled() bool {
	return s.done || s.status == SessionCompleted || s.status == SessionSkipped
}

// CountsTowardTotal reports whether the session contributes to the plan's
// total study hours. Skipped sessions do not.
func (s *Session) CountsTowardTotal() bool {
	return s.status != SessionSkipped
}

// IsMissedOn reports whether the session should be treated as missed on a plan
// dated planDate: its end time has passed and it is not settled.
func (s *Session) IsMissedOn(planDate string, now time.Time) bool {
	if s.IsSettled() {
		return false
	}
	day, err := ParseDate(planDate)
	if err != nil {
		return false
	}
	end := day.Add(time.Duration(s.EndMinute()) * time.Minute)
	return end.Before(now)
}

// MarkDone flags the session's work as done. Status is left untouched; the
// two fields are written by different collaborators.
func (s *Session) MarkDone() {
	s.done = true
	s.Touch()
}

// SetStatus transitions the session to a new lifecycle state.
func (s *Session) SetStatus(status SessionStatus) {
	s.status = status
	s.Touch()
}

// MarkRescheduled records that the session was moved from a prior placement.
func (s *Session) MarkRescheduled(fromDate, fromTime string, at time.Time) {
	s.status = SessionRescheduled
	s.originalDate = fromDate
	s.originalTime = fromTime
	s.rescheduledAt = &at
	s.Touch()
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	if s.rescheduledAt != nil {
		at := *s.rescheduledAt
		clone.rescheduledAt = &at
	}
	return &clone
}

// RehydrateSession recreates a session from persisted state.
func RehydrateSession(
	id uuid.UUID,
	taskID uuid.UUID,
	sessionNumber int,
	startTime, endTime string,
	allocatedHours float64,
	status SessionStatus,
	done bool,
	originalDate, originalTime string,
	rescheduledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Session {
	return &Session{
		BaseEntity:     shared.RehydrateBaseEntity(id, createdAt, updatedAt),
		taskID:         taskID,
		sessionNumber:  sessionNumber,
		startTime:      startTime,
		endTime:        endTime,
		allocatedHours: allocatedHours,
		status:         status,
		done:           done,
		originalDate:   originalDate,
		originalTime:   originalTime,
		rescheduledAt:  rescheduledAt,
	}
}
