package domain

import (
	"time"

	"github.com/google/uuid"
)

// RedistributionTrigger describes why a session move was attempted.
type RedistributionTrigger string

const (
	RedistributionMissed   RedistributionTrigger = "missed"
	RedistributionEviction RedistributionTrigger = "lock-eviction"
)

// RedistributionRecord captures a redistribution outcome for auditing.
type RedistributionRecord struct {
	ID            uuid.UUID
	TaskID        uuid.UUID
	SessionNumber int
	Trigger       RedistributionTrigger
	AttemptedAt   time.Time
	FromDate      string
	FromTime      string
	ToDate        string
	ToTime        string
	Hours         float64
	Success       bool
	FailureReason string
}
