package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresSchema mirrors the SQLite schema with native Postgres types.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id                UUID PRIMARY KEY,
    title             TEXT NOT NULL,
    estimated_hours   DOUBLE PRECISION NOT NULL,
    deadline          TEXT NOT NULL,
    important         BOOLEAN NOT NULL DEFAULT FALSE,
    status            TEXT NOT NULL DEFAULT 'pending',
    frequency         TEXT NOT NULL DEFAULT 'flexible',
    min_block_minutes INTEGER NOT NULL DEFAULT 0,
    created_at        TIMESTAMPTZ NOT NULL,
    updated_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

CREATE TABLE IF NOT EXISTS study_plans (
    id              UUID PRIMARY KEY,
    plan_date       TEXT NOT NULL UNIQUE,
    available_hours DOUBLE PRECISION NOT NULL,
    is_locked       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id              UUID PRIMARY KEY,
    plan_id         UUID NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
    task_id         UUID NOT NULL,
    session_number  INTEGER NOT NULL,
    start_time      TEXT NOT NULL,
    end_time        TEXT NOT NULL,
    allocated_hours DOUBLE PRECISION NOT NULL,
    status          TEXT NOT NULL DEFAULT 'scheduled',
    done            BOOLEAN NOT NULL DEFAULT FALSE,
    original_date   TEXT NOT NULL DEFAULT '',
    original_time   TEXT NOT NULL DEFAULT '',
    rescheduled_at  TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_plan ON sessions(plan_id);
CREATE INDEX IF NOT EXISTS idx_sessions_task ON sessions(task_id);

CREATE TABLE IF NOT EXISTS fixed_commitments (
    id                   UUID PRIMARY KEY,
    title                TEXT NOT NULL,
    start_time           TEXT NOT NULL,
    end_time             TEXT NOT NULL,
    recurring            BOOLEAN NOT NULL DEFAULT FALSE,
    days_of_week         JSONB NOT NULL DEFAULT '[]',
    specific_dates       JSONB NOT NULL DEFAULT '[]',
    modified_occurrences JSONB NOT NULL DEFAULT '{}',
    deleted_occurrences  JSONB NOT NULL DEFAULT '{}',
    created_at           TIMESTAMPTZ NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id                    INTEGER PRIMARY KEY CHECK (id = 1),
    work_days             JSONB NOT NULL,
    daily_available_hours DOUBLE PRECISION NOT NULL,
    buffer_days           INTEGER NOT NULL,
    window_start_hour     INTEGER NOT NULL,
    window_end_hour       INTEGER NOT NULL,
    min_session_minutes   INTEGER NOT NULL,
    plan_mode             TEXT NOT NULL,
    updated_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS redistribution_log (
    id             UUID PRIMARY KEY,
    task_id        UUID NOT NULL,
    session_number INTEGER NOT NULL,
    trigger_type   TEXT NOT NULL,
    attempted_at   TIMESTAMPTZ NOT NULL,
    from_date      TEXT NOT NULL,
    from_time      TEXT NOT NULL DEFAULT '',
    to_date        TEXT NOT NULL DEFAULT '',
    to_time        TEXT NOT NULL DEFAULT '',
    hours          DOUBLE PRECISION NOT NULL,
    success        BOOLEAN NOT NULL,
    failure_reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_redistribution_log_date ON redistribution_log(from_date);
`

// MigratePostgres applies the schema to a Postgres database.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("applying postgres schema: %w", err)
	}
	return nil
}
