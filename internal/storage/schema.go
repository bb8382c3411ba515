package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			difficulty INTEGER NOT NULL DEFAULT 1,
			category TEXT NOT NULL DEFAULT 'mandatory',
			repeatable INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Append-only; points are snapshotted at completion time so later
		// difficulty edits never rewrite history.
		`CREATE TABLE IF NOT EXISTS completions (
			id TEXT PRIMARY KEY,
			task_id INTEGER NOT NULL,
			completed_at DATETIME NOT NULL,
			day TEXT NOT NULL,
			points INTEGER NOT NULL,
			FOREIGN KEY(task_id) REFERENCES tasks(id)
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			total_points INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			streak INTEGER NOT NULL DEFAULT 0,
			health INTEGER NOT NULL DEFAULT 100,
			max_health INTEGER NOT NULL DEFAULT 100,
			last_processed_date TEXT NOT NULL,
			selected_date TEXT,
			settings TEXT NOT NULL DEFAULT '{}'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_day ON completions(day);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_task_id_day ON completions(task_id, day);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE progress ADD COLUMN selected_date TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
