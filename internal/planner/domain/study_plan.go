package domain

import (
	"errors"
	"sort"
	"time"

	shared "github.com/Rosalinda-art/studyflow/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrDayLocked       = errors.New("study plan is locked")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionOverlap  = errors.New("session overlaps an existing session")
)

// StudyPlan holds the sessions and lock status for one calendar date. Plans
// are created lazily; a date with no plan is fully open with default capacity.
type StudyPlan struct {
	shared.BaseAggregateRoot
	date            string
	sessions        []*Session
	totalStudyHours float64
	availableHours  float64
	isLocked        bool
}

// NewStudyPlan creates an empty plan for a date with the given daily capacity.
func NewStudyPlan(date string, availableHours float64) *StudyPlan {
	return &StudyPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		date:              date,
		sessions:          make([]*Session, 0),
		availableHours:    availableHours,
	}
}

// Getters

func (p *StudyPlan) Date() string             { return p.date }
func (p *StudyPlan) Sessions() []*Session     { return p.sessions }
func (p *StudyPlan) TotalStudyHours() float64 { return p.totalStudyHours }
func (p *StudyPlan) AvailableHours() float64  { return p.availableHours }
func (p *StudyPlan) IsLocked() bool           { return p.isLocked }

// Weekday returns the plan date's weekday.
func (p *StudyPlan) Weekday() time.Weekday { return WeekdayOf(p.date) }

// SpareHours returns the capacity still open on this day.
func (p *StudyPlan) SpareHours() float64 {
	spare := p.availableHours - p.totalStudyHours
	if spare < 0 {
		return 0
	}
	return spare
}

// SetAvailableHours overrides the day's capacity.
func (p *StudyPlan) SetAvailableHours(hours float64) {
	p.availableHours = hours
	p.Touch()
}

// AddSession appends a session to the plan. Inserting into a locked plan is
// rejected, as is overlap with any session that still occupies its time range.
func (p *StudyPlan) AddSession(session *Session) error {
	if p.isLocked {
		return ErrDayLocked
	}
	for _, existing := range p.sessions {
		if existing.Status() == SessionSkipped {
			continue
		}
		if existing.TimeRange().Overlaps(session.TimeRange()) {
			return ErrSessionOverlap
		}
	}

	p.sessions = append(p.sessions, session)
	p.sortSessions()
	p.RecomputeTotal()
	p.Touch()

	p.AddDomainEvent(NewSessionPlaced(p.ID(), p.date, session.TaskID(), session.SessionNumber()))

	return nil
}

// FindSession returns the session with the given entity id.
func (p *StudyPlan) FindSession(id uuid.UUID) (*Session, error) {
	for _, s := range p.sessions {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, ErrSessionNotFound
}

// FindTaskSession returns the session for a task with the given number.
func (p *StudyPlan) FindTaskSession(taskID uuid.UUID, sessionNumber int) (*Session, error) {
	for _, s := range p.sessions {
		if s.TaskID() == taskID && s.SessionNumber() == sessionNumber {
			return s, nil
		}
	}
	return nil, ErrSessionNotFound
}

// RemoveSession removes a session from an unlocked plan.
func (p *StudyPlan) RemoveSession(id uuid.UUID) error {
	if p.isLocked {
		return ErrDayLocked
	}
	for i, s := range p.sessions {
		if s.ID() == id {
			p.sessions = append(p.sessions[:i], p.sessions[i+1:]...)
			p.RecomputeTotal()
			p.Touch()
			return nil
		}
	}
	return ErrSessionNotFound
}

// SessionsForTask returns the sessions referencing the given task.
func (p *StudyPlan) SessionsForTask(taskID uuid.UUID) []*Session {
	matches := make([]*Session, 0)
	for _, s := range p.sessions {
		if s.TaskID() == taskID {
			matches = append(matches, s)
		}
	}
	return matches
}

// RecomputeTotal re-derives totalStudyHours from the session list. It must be
// called after every structural mutation; skipped sessions do not count.
func (p *StudyPlan) RecomputeTotal() {
	total := 0.0
	for _, s := range p.sessions {
		if s.CountsTowardTotal() {
			total += s.AllocatedHours()
		}
	}
	p.totalStudyHours = total
}

// Lock freezes the day. Locked content is immutable to every generation and
// redistribution pass.
func (p *StudyPlan) Lock() {
	if p.isLocked {
		return
	}
	p.isLocked = true
	p.Touch()
	p.AddDomainEvent(NewDayLocked(p.ID(), p.date))
}

// Unlock reopens the day and resets its capacity to the settings default.
func (p *StudyPlan) Unlock(defaultAvailableHours float64) {
	if !p.isLocked {
		return
	}
	p.isLocked = false
	p.availableHours = defaultAvailableHours
	p.Touch()
	p.AddDomainEvent(NewDayUnlocked(p.ID(), p.date))
}

// Clone returns a deep copy of the plan, locked days included.
func (p *StudyPlan) Clone() *StudyPlan {
	sessions := make([]*Session, len(p.sessions))
	for i, s := range p.sessions {
		sessions[i] = s.Clone()
	}
	return &StudyPlan{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(
			shared.RehydrateBaseEntity(p.ID(), p.CreatedAt(), p.UpdatedAt()),
		),
		date:            p.date,
		sessions:        sessions,
		totalStudyHours: p.totalStudyHours,
		availableHours:  p.availableHours,
		isLocked:        p.isLocked,
	}
}

func (p *StudyPlan) sortSessions() {
	sort.SliceStable(p.sessions, func(i, j int) bool {
		if p.sessions[i].StartMinute() != p.sessions[j].StartMinute() {
			return p.sessions[i].StartMinute() < p.sessions[j].StartMinute()
		}
		return p.sessions[i].SessionNumber() < p.sessions[j].SessionNumber()
	})
}

// RehydrateStudyPlan recreates a plan from persisted state.
func RehydrateStudyPlan(
	id uuid.UUID,
	date string,
	sessions []*Session,
	availableHours float64,
	isLocked bool,
	createdAt, updatedAt time.Time,
) *StudyPlan {
	p := &StudyPlan{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(
			shared.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		date:           date,
		sessions:       sessions,
		availableHours: availableHours,
		isLocked:       isLocked,
	}
	p.sortSessions()
	p.RecomputeTotal()
	return p
}
