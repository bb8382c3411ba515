package engine

import (
	"context"
	"fmt"

	"ascend/internal/storage"
)

type AddTaskInput struct {
	Name        string
	Description *string
	Difficulty  Difficulty
	Category    Category
	Repeatable  bool
}

func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (int64, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return 0, err
	}
	if !in.Difficulty.IsValid() {
		return 0, fmt.Errorf("invalid difficulty: %d", in.Difficulty)
	}
	if !in.Category.IsValid() {
		return 0, fmt.Errorf("invalid category: %q", in.Category)
	}

	return s.tasks.Insert(ctx, storage.TaskInsert{
		Name:        name,
		Description: in.Description,
		Difficulty:  int(in.Difficulty),
		Category:    string(in.Category),
		Repeatable:  in.Repeatable,
	})
}

type UpdateTaskInput struct {
	Name        *string
	Description *string
	Difficulty  *Difficulty
	Category    *Category
	Repeatable  *bool
}

// UpdateTask edits catalog fields. Historical completions keep their
// snapshotted points; a difficulty change only affects future rewards.
func (s *Service) UpdateTask(ctx context.Context, id int64, in UpdateTaskInput) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return TaskNotFoundError{ID: id}
	}

	patch := storage.TaskUpdate{
		Description: in.Description,
		Repeatable:  in.Repeatable,
	}
	if in.Name != nil {
		name, err := normalizeName(*in.Name)
		if err != nil {
			return err
		}
		patch.Name = &name
	}
	if in.Difficulty != nil {
		if !in.Difficulty.IsValid() {
			return fmt.Errorf("invalid difficulty: %d", *in.Difficulty)
		}
		d := int(*in.Difficulty)
		patch.Difficulty = &d
	}
	if in.Category != nil {
		if !in.Category.IsValid() {
			return fmt.Errorf("invalid category: %q", *in.Category)
		}
		c := string(*in.Category)
		patch.Category = &c
	}

	return s.tasks.Update(ctx, id, patch)
}

// DeleteTask removes a task and cascades to its completion events.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return TaskNotFoundError{ID: id}
	}
	return s.tasks.DeleteCascade(ctx, id)
}

// CompletedToday reports which of the given tasks already have a
// completion on the selected day.
func (s *Service) CompletedToday(ctx context.Context, tasks []storage.Task) (map[int64]bool, error) {
	day, err := s.SelectedDay(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	done := make(map[int64]bool, len(completions))
	for _, c := range completions {
		done[c.TaskID] = true
	}
	return done, nil
}
