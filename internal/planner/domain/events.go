package domain

import (
	shared "github.com/Rosalinda-art/studyflow/internal/shared/domain"
	"github.com/google/uuid"
)

// Routing keys for planner domain events.
const (
	RoutingKeyTaskCreated    = "planner.task.created"
	RoutingKeyTaskCompleted  = "planner.task.completed"
	RoutingKeySessionPlaced  = "planner.session.placed"
	RoutingKeySessionMoved   = "planner.session.moved"
	RoutingKeyDayLocked      = "planner.day.locked"
	RoutingKeyDayUnlocked    = "planner.day.unlocked"
)

// TaskCreated is emitted when a new task enters the system.
type TaskCreated struct {
	shared.BaseEvent
	Title string
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, title string) TaskCreated {
	return TaskCreated{
		BaseEvent: shared.NewBaseEvent(taskID, "Task", RoutingKeyTaskCreated),
		Title:     title,
	}
}

// TaskCompleted is emitted when a task is finished.
type TaskCompleted struct {
	shared.BaseEvent
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID uuid.UUID) TaskCompleted {
	return TaskCompleted{
		BaseEvent: shared.NewBaseEvent(taskID, "Task", RoutingKeyTaskCompleted),
	}
}

// SessionPlaced is emitted when a session is added to a study plan.
type SessionPlaced struct {
	shared.BaseEvent
	Date          string
	TaskID        uuid.UUID
	SessionNumber int
}

// NewSessionPlaced creates a SessionPlaced event.
func NewSessionPlaced(planID uuid.UUID, date string, taskID uuid.UUID, sessionNumber int) SessionPlaced {
	return SessionPlaced{
		BaseEvent:     shared.NewBaseEvent(planID, "StudyPlan", RoutingKeySessionPlaced),
		Date:          date,
		TaskID:        taskID,
		SessionNumber: sessionNumber,
	}
}

// SessionMoved is emitted when redistribution relocates a session.
type SessionMoved struct {
	shared.BaseEvent
	TaskID        uuid.UUID
	SessionNumber int
	FromDate      string
	ToDate        string
}

// NewSessionMoved creates a SessionMoved event.
func NewSessionMoved(planID uuid.UUID, taskID uuid.UUID, sessionNumber int, fromDate, toDate string) SessionMoved {
	return SessionMoved{
		BaseEvent:     shared.NewBaseEvent(planID, "StudyPlan", RoutingKeySessionMoved),
		TaskID:        taskID,
		SessionNumber: sessionNumber,
		FromDate:      fromDate,
		ToDate:        toDate,
	}
}

// DayLocked is emitted when a study plan is frozen.
type DayLocked struct {
	shared.BaseEvent
	Date string
}

// NewDayLocked creates a DayLocked event.
func NewDayLocked(planID uuid.UUID, date string) DayLocked {
	return DayLocked{
		BaseEvent: shared.NewBaseEvent(planID, "StudyPlan", RoutingKeyDayLocked),
		Date:      date,
	}
}

// DayUnlocked is emitted when a study plan is reopened.
type DayUnlocked struct {
	shared.BaseEvent
	Date string
}

// NewDayUnlocked creates a DayUnlocked event.
func NewDayUnlocked(planID uuid.UUID, date string) DayUnlocked {
	return DayUnlocked{
		BaseEvent: shared.NewBaseEvent(planID, "StudyPlan", RoutingKeyDayUnlocked),
		Date:      date,
	}
}
