package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ascend/internal/dateutil"
	"ascend/internal/storage"
)

// Service is the progression engine. All mutations run synchronously on
// one logical thread; the host never overlaps calls.
type Service struct {
	db          *sql.DB
	tasks       *storage.TaskRepo
	completions *storage.CompletionRepo
	progress    *storage.ProgressRepo

	defaultSettings storage.Settings
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:              db,
		tasks:           storage.NewTaskRepo(db),
		completions:     storage.NewCompletionRepo(db),
		progress:        storage.NewProgressRepo(db),
		defaultSettings: storage.DefaultSettings(),
	}
}

// SetDefaultSettings overrides the settings used when the progression row
// is first created (from config).
func (s *Service) SetDefaultSettings(settings storage.Settings) {
	s.defaultSettings = settings
}

func (s *Service) TaskRepo() *storage.TaskRepo             { return s.tasks }
func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }
func (s *Service) ProgressRepo() *storage.ProgressRepo     { return s.progress }

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

// getProgress loads the aggregate and repairs a drifted cached level.
// The stored level is never trusted as source of truth.
func (s *Service) getProgress(ctx context.Context) (*storage.Progress, error) {
	p, err := s.progress.GetOrCreateMain(ctx, s.defaultSettings)
	if err != nil {
		return nil, err
	}
	computed := LevelFor(p.TotalPoints).Tier
	if p.Level != computed {
		p.Level = computed
		if err := s.progress.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Progress returns the current aggregate for display.
func (s *Service) Progress(ctx context.Context) (*storage.Progress, error) {
	return s.getProgress(ctx)
}

// SelectedDay returns the day completions are recorded against: the debug
// override when set, otherwise the real local calendar day.
func (s *Service) SelectedDay(ctx context.Context) (dateutil.Key, error) {
	p, err := s.getProgress(ctx)
	if err != nil {
		return dateutil.Key{}, err
	}
	if p.SelectedDay != nil {
		return *p.SelectedDay, nil
	}
	return dateutil.Today(), nil
}

// SetSelectedDay pins the selected day independently of the real calendar.
// It never touches the catch-up cursor; penalties for simulated days flow
// through Reconcile and CompleteTask as usual.
func (s *Service) SetSelectedDay(ctx context.Context, day dateutil.Key) error {
	p, err := s.getProgress(ctx)
	if err != nil {
		return err
	}
	p.SelectedDay = &day
	return s.progress.Update(ctx, p)
}

// ClearSelectedDay returns the engine to real time.
func (s *Service) ClearSelectedDay(ctx context.Context) error {
	p, err := s.getProgress(ctx)
	if err != nil {
		return err
	}
	p.SelectedDay = nil
	return s.progress.Update(ctx, p)
}

// UpdateSettings merges new settings into the aggregate.
func (s *Service) UpdateSettings(ctx context.Context, settings storage.Settings) error {
	p, err := s.getProgress(ctx)
	if err != nil {
		return err
	}
	p.Settings = settings
	return s.progress.Update(ctx, p)
}

// ResetAll clears the catalog, the completion log, and the progression
// aggregate together. There is no partial reset.
func (s *Service) ResetAll(ctx context.Context) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM completions`,
			`DELETE FROM tasks`,
			`DELETE FROM progress`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	// Recreate first-run defaults immediately.
	_, err = s.progress.GetOrCreateMain(ctx, s.defaultSettings)
	return err
}
