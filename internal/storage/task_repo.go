package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	Name        string
	Description *string
	Difficulty  int
	Category    string
	Repeatable  bool
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (name, description, difficulty, category, repeatable, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Description, in.Difficulty, in.Category, boolToInt(in.Repeatable), time.Now().UTC(), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, difficulty, category, repeatable, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("task get: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `
		SELECT id, name, description, difficulty, category, repeatable, created_at, updated_at
		FROM tasks
		ORDER BY id ASC
	`)
}

func (r *TaskRepo) ListByCategory(ctx context.Context, category string) ([]Task, error) {
	return r.list(ctx, `
		SELECT id, name, description, difficulty, category, repeatable, created_at, updated_at
		FROM tasks
		WHERE category = ?
		ORDER BY id ASC
	`, category)
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

type TaskUpdate struct {
	Name        *string
	Description *string
	Difficulty  *int
	Category    *string
	Repeatable  *bool
}

func (r *TaskRepo) Update(ctx context.Context, id int64, in TaskUpdate) error {
	t, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return sql.ErrNoRows
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Difficulty != nil {
		t.Difficulty = *in.Difficulty
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Repeatable != nil {
		t.Repeatable = *in.Repeatable
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, description = ?, difficulty = ?, category = ?, repeatable = ?, updated_at = ?
		WHERE id = ?
	`, t.Name, t.Description, t.Difficulty, t.Category, boolToInt(t.Repeatable), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

// DeleteCascade removes a task together with its completion events so no
// orphan rewards stay counted.
func (r *TaskRepo) DeleteCascade(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE task_id = ?`, id); err != nil {
			return fmt.Errorf("delete task completions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var repeatable int
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.Category, &repeatable, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Repeatable = repeatable != 0
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
