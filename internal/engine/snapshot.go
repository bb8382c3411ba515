package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ascend/internal/dateutil"
	"ascend/internal/storage"
)

// Snapshot is the full persisted state as one structured document:
// catalog, completion log, and progression aggregate.
type Snapshot struct {
	Tasks       []SnapshotTask       `json:"tasks"`
	Completions []SnapshotCompletion `json:"completions"`
	UserData    *SnapshotUserData    `json:"userData"`
	ExportedAt  time.Time            `json:"exportedAt"`
}

type SnapshotTask struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Difficulty  int       `json:"difficulty"`
	Category    string    `json:"category"`
	Repeatable  bool      `json:"repeatable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SnapshotCompletion struct {
	ID          string    `json:"id"`
	TaskID      int64     `json:"taskId"`
	CompletedAt time.Time `json:"completedAt"`
	Day         string    `json:"day"`
	Points      int       `json:"points"`
}

// SnapshotUserData carries the progression aggregate. Settings are
// round-tripped losslessly even though the engine never reads them.
type SnapshotUserData struct {
	TotalPoints       int              `json:"totalPoints"`
	Level             int              `json:"level"`
	Streak            int              `json:"streak"`
	Health            int              `json:"health"`
	MaxHealth         int              `json:"maxHealth"`
	LastProcessedDate string           `json:"lastProcessedDate"`
	Settings          storage.Settings `json:"settings"`
}

// Export serializes the complete state.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.getProgress(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Tasks:       make([]SnapshotTask, 0, len(tasks)),
		Completions: make([]SnapshotCompletion, 0, len(completions)),
		UserData: &SnapshotUserData{
			TotalPoints:       p.TotalPoints,
			Level:             p.Level,
			Streak:            p.Streak,
			Health:            p.Health,
			MaxHealth:         p.MaxHealth,
			LastProcessedDate: p.LastProcessed.String(),
			Settings:          p.Settings,
		},
		ExportedAt: time.Now().UTC(),
	}
	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, SnapshotTask{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Difficulty:  t.Difficulty,
			Category:    t.Category,
			Repeatable:  t.Repeatable,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	for _, c := range completions {
		snap.Completions = append(snap.Completions, SnapshotCompletion{
			ID:          c.ID,
			TaskID:      c.TaskID,
			CompletedAt: c.CompletedAt,
			Day:         c.Day.String(),
			Points:      c.Points,
		})
	}
	return snap, nil
}

// ExportJSON renders the snapshot as an indented document.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Import replaces the entire state with the given snapshot document.
// Validation happens before any write, and the replacement runs in a
// single transaction: on any failure the prior state is left untouched.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return SnapshotFormatError{Reason: err.Error()}
	}
	if err := validateSnapshot(&snap); err != nil {
		return err
	}

	cursor, _ := dateutil.Parse(snap.UserData.LastProcessedDate)
	settings, err := json.Marshal(snap.UserData.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	health := ClampHealth(snap.UserData.Health, snap.UserData.MaxHealth)
	level := LevelFor(snap.UserData.TotalPoints).Tier

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM completions`,
			`DELETE FROM tasks`,
			`DELETE FROM progress`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("import clear: %w", err)
			}
		}

		for _, t := range snap.Tasks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tasks (id, name, description, difficulty, category, repeatable, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, t.ID, t.Name, t.Description, t.Difficulty, t.Category, boolToInt(t.Repeatable), t.CreatedAt, t.UpdatedAt); err != nil {
				return fmt.Errorf("import task %d: %w", t.ID, err)
			}
		}
		for _, c := range snap.Completions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO completions (id, task_id, completed_at, day, points)
				VALUES (?, ?, ?, ?, ?)
			`, c.ID, c.TaskID, c.CompletedAt, c.Day, c.Points); err != nil {
				return fmt.Errorf("import completion %s: %w", c.ID, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO progress (key, total_points, level, streak, health, max_health, last_processed_date, settings)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, storage.MainProgressKey, snap.UserData.TotalPoints, level, snap.UserData.Streak,
			health, snap.UserData.MaxHealth, cursor.String(), string(settings)); err != nil {
			return fmt.Errorf("import progress: %w", err)
		}
		return nil
	})
}

func validateSnapshot(snap *Snapshot) error {
	if snap.UserData == nil {
		return SnapshotFormatError{Reason: "missing userData"}
	}
	if snap.Tasks == nil {
		return SnapshotFormatError{Reason: "missing tasks"}
	}
	if snap.Completions == nil {
		return SnapshotFormatError{Reason: "missing completions"}
	}
	if snap.UserData.MaxHealth <= 0 {
		return SnapshotFormatError{Reason: "maxHealth must be positive"}
	}
	if snap.UserData.TotalPoints < 0 {
		return SnapshotFormatError{Reason: "totalPoints must not be negative"}
	}
	if _, err := dateutil.Parse(snap.UserData.LastProcessedDate); err != nil {
		return SnapshotFormatError{Reason: "invalid lastProcessedDate"}
	}

	taskIDs := make(map[int64]bool, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if t.Name == "" {
			return SnapshotFormatError{Reason: fmt.Sprintf("task %d has no name", t.ID)}
		}
		if !Difficulty(t.Difficulty).IsValid() {
			return SnapshotFormatError{Reason: fmt.Sprintf("task %d has invalid difficulty %d", t.ID, t.Difficulty)}
		}
		if !Category(t.Category).IsValid() {
			return SnapshotFormatError{Reason: fmt.Sprintf("task %d has invalid category %q", t.ID, t.Category)}
		}
		if taskIDs[t.ID] {
			return SnapshotFormatError{Reason: fmt.Sprintf("duplicate task id %d", t.ID)}
		}
		taskIDs[t.ID] = true
	}
	for _, c := range snap.Completions {
		if c.ID == "" {
			return SnapshotFormatError{Reason: "completion with empty id"}
		}
		if !taskIDs[c.TaskID] {
			return SnapshotFormatError{Reason: fmt.Sprintf("completion %s references unknown task %d", c.ID, c.TaskID)}
		}
		if _, err := dateutil.Parse(c.Day); err != nil {
			return SnapshotFormatError{Reason: fmt.Sprintf("completion %s has invalid day %q", c.ID, c.Day)}
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
