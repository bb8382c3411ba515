package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ascend/internal/dateutil"
)

const MainProgressKey = "main_user"

// DefaultMaxHealth mirrors the original 0–100 health bar.
const DefaultMaxHealth = 100

type ProgressRepo struct {
	db *sql.DB
}

func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

func (r *ProgressRepo) Get(ctx context.Context, key string) (*Progress, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, total_points, level, streak, health, max_health, last_processed_date, selected_date, settings
		FROM progress
		WHERE key = ?
	`, key)

	var p Progress
	var lastProcessed string
	var selected sql.NullString
	var settings string
	err := row.Scan(&p.Key, &p.TotalPoints, &p.Level, &p.Streak, &p.Health, &p.MaxHealth, &lastProcessed, &selected, &settings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("progress get: %w", err)
	}

	p.LastProcessed, err = dateutil.Parse(lastProcessed)
	if err != nil {
		return nil, fmt.Errorf("progress cursor: %w", err)
	}
	if selected.Valid && selected.String != "" {
		day, err := dateutil.Parse(selected.String)
		if err != nil {
			return nil, fmt.Errorf("progress selected day: %w", err)
		}
		p.SelectedDay = &day
	}
	if err := json.Unmarshal([]byte(settings), &p.Settings); err != nil {
		return nil, fmt.Errorf("progress settings: %w", err)
	}
	return &p, nil
}

// GetOrCreateMain loads the single progression row, creating first-run
// defaults when missing. The catch-up cursor starts at today so a fresh
// install is never penalized for days before it existed.
func (r *ProgressRepo) GetOrCreateMain(ctx context.Context, defaults Settings) (*Progress, error) {
	p, err := r.Get(ctx, MainProgressKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	settings, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("progress settings marshal: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO progress (key, total_points, level, streak, health, max_health, last_processed_date, settings)
		VALUES (?, 0, 1, 0, ?, ?, ?, ?)
	`, MainProgressKey, DefaultMaxHealth, DefaultMaxHealth, dateutil.Today().String(), string(settings))
	if err != nil {
		return nil, fmt.Errorf("progress insert: %w", err)
	}
	return r.Get(ctx, MainProgressKey)
}

func (r *ProgressRepo) Update(ctx context.Context, p *Progress) error {
	settings, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("progress settings marshal: %w", err)
	}
	var selected any
	if p.SelectedDay != nil {
		selected = p.SelectedDay.String()
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE progress
		SET total_points = ?, level = ?, streak = ?, health = ?, max_health = ?,
			last_processed_date = ?, selected_date = ?, settings = ?
		WHERE key = ?
	`, p.TotalPoints, p.Level, p.Streak, p.Health, p.MaxHealth, p.LastProcessed.String(), selected, string(settings), p.Key)
	if err != nil {
		return fmt.Errorf("progress update: %w", err)
	}
	return nil
}
