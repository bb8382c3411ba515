package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ascend/internal/dateutil"
)

type CompletionRepo struct {
	db *sql.DB
}

func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, c Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (id, task_id, completed_at, day, points)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.TaskID, c.CompletedAt, c.Day.String(), c.Points)
	if err != nil {
		return fmt.Errorf("completion insert: %w", err)
	}
	return nil
}

func (r *CompletionRepo) ListAll(ctx context.Context) ([]Completion, error) {
	return r.list(ctx, `
		SELECT id, task_id, completed_at, day, points
		FROM completions
		ORDER BY completed_at ASC
	`)
}

func (r *CompletionRepo) ListByDay(ctx context.Context, day dateutil.Key) ([]Completion, error) {
	return r.list(ctx, `
		SELECT id, task_id, completed_at, day, points
		FROM completions
		WHERE day = ?
		ORDER BY completed_at ASC
	`, day.String())
}

func (r *CompletionRepo) ExistsForTaskOnDay(ctx context.Context, taskID int64, day dateutil.Key) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM completions
		WHERE task_id = ? AND day = ?
	`, taskID, day.String())
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("completion exists: %w", err)
	}
	return n > 0, nil
}

func (r *CompletionRepo) CountAll(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

func (r *CompletionRepo) list(ctx context.Context, query string, args ...any) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var day string
		var completedAt time.Time
		if err := rows.Scan(&c.ID, &c.TaskID, &completedAt, &day, &c.Points); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		c.CompletedAt = completedAt
		c.Day, err = dateutil.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("completion day: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion list rows: %w", err)
	}
	return out, nil
}
