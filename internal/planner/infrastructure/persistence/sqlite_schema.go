package persistence

import (
	"context"
	"database/sql"
	"fmt"
)

// sqliteSchema is the full schema, applied idempotently on startup.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id                TEXT PRIMARY KEY,
    title             TEXT NOT NULL,
    estimated_hours   REAL NOT NULL,
    deadline          TEXT NOT NULL,
    important         INTEGER NOT NULL DEFAULT 0,
    status            TEXT NOT NULL DEFAULT 'pending',
    frequency         TEXT NOT NULL DEFAULT 'flexible',
    min_block_minutes INTEGER NOT NULL DEFAULT 0,
    created_at        TEXT NOT NULL,
    updated_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

CREATE TABLE IF NOT EXISTS study_plans (
    id              TEXT PRIMARY KEY,
    plan_date       TEXT NOT NULL UNIQUE,
    available_hours REAL NOT NULL,
    is_locked       INTEGER NOT NULL DEFAULT 0,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id              TEXT PRIMARY KEY,
    plan_id         TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
    task_id         TEXT NOT NULL,
    session_number  INTEGER NOT NULL,
    start_time      TEXT NOT NULL,
    end_time        TEXT NOT NULL,
    allocated_hours REAL NOT NULL,
    status          TEXT NOT NULL DEFAULT 'scheduled',
    done            INTEGER NOT NULL DEFAULT 0,
    original_date   TEXT NOT NULL DEFAULT '',
    original_time   TEXT NOT NULL DEFAULT '',
    rescheduled_at  TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_plan ON sessions(plan_id);
CREATE INDEX IF NOT EXISTS idx_sessions_task ON sessions(task_id);

CREATE TABLE IF NOT EXISTS fixed_commitments (
    id                   TEXT PRIMARY KEY,
    title                TEXT NOT NULL,
    start_time           TEXT NOT NULL,
    end_time             TEXT NOT NULL,
    recurring            INTEGER NOT NULL DEFAULT 0,
    days_of_week         TEXT NOT NULL DEFAULT '[]',
    specific_dates       TEXT NOT NULL DEFAULT '[]',
    modified_occurrences TEXT NOT NULL DEFAULT '{}',
    deleted_occurrences  TEXT NOT NULL DEFAULT '{}',
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id                    INTEGER PRIMARY KEY CHECK (id = 1),
    work_days             TEXT NOT NULL,
    daily_available_hours REAL NOT NULL,
    buffer_days           INTEGER NOT NULL,
    window_start_hour     INTEGER NOT NULL,
    window_end_hour       INTEGER NOT NULL,
    min_session_minutes   INTEGER NOT NULL,
    plan_mode             TEXT NOT NULL,
    updated_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS redistribution_log (
    id             TEXT PRIMARY KEY,
    task_id        TEXT NOT NULL,
    session_number INTEGER NOT NULL,
    trigger_type   TEXT NOT NULL,
    attempted_at   TEXT NOT NULL,
    from_date      TEXT NOT NULL,
    from_time      TEXT NOT NULL DEFAULT '',
    to_date        TEXT NOT NULL DEFAULT '',
    to_time        TEXT NOT NULL DEFAULT '',
    hours          REAL NOT NULL,
    success        INTEGER NOT NULL,
    failure_reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_redistribution_log_date ON redistribution_log(from_date);
`

// MigrateSQLite applies the schema to a SQLite database.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("applying sqlite schema: %w", err)
	}
	return nil
}
