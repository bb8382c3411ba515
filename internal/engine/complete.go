package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ascend/internal/storage"
)

type CompleteResult struct {
	TaskID          int64
	Points          int
	HealthRecovered int
	LevelBefore     int
	LevelAfter      int
	LevelUp         bool
	NewRank         Rank
	Streak          int
}

// CompleteTask records a completion of the task against the currently
// selected day and applies its reward.
//
// Rejections are typed: TaskNotFoundError for an unknown id,
// AlreadyCompletedError when a non-repeatable task already has a
// completion on that day. Neither mutates anything.
//
// On acceptance the completion day becomes the catch-up cursor (if later
// than it), so the reconciler never re-penalizes a day the user was
// actively present for.
func (s *Service) CompleteTask(ctx context.Context, id int64) (*CompleteResult, error) {
	p, err := s.getProgress(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := p.Level

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, TaskNotFoundError{ID: id}
	}

	day, err := s.SelectedDay(ctx)
	if err != nil {
		return nil, err
	}

	if !task.Repeatable {
		done, err := s.completions.ExistsForTaskOnDay(ctx, id, day)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, AlreadyCompletedError{TaskID: id, Day: day}
		}
	}

	reward, err := RewardForCompletion(Difficulty(task.Difficulty))
	if err != nil {
		return nil, err
	}

	completion := storage.Completion{
		ID:          uuid.NewString(),
		TaskID:      id,
		CompletedAt: time.Now().UTC(),
		Day:         day,
		Points:      reward.Points,
	}
	if err := s.completions.Insert(ctx, completion); err != nil {
		return nil, err
	}

	allTasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	allCompletions, err := s.completions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	p.TotalPoints += reward.Points
	rank := LevelFor(p.TotalPoints)
	p.Level = rank.Tier
	p.Streak = CurrentStreak(allTasks, allCompletions, day)
	p.Health = ClampHealth(p.Health+reward.Health, p.MaxHealth)
	if day.After(p.LastProcessed) {
		p.LastProcessed = day
	}
	if err := s.progress.Update(ctx, p); err != nil {
		return nil, err
	}

	return &CompleteResult{
		TaskID:          id,
		Points:          reward.Points,
		HealthRecovered: reward.Health,
		LevelBefore:     levelBefore,
		LevelAfter:      p.Level,
		LevelUp:         p.Level > levelBefore,
		NewRank:         rank,
		Streak:          p.Streak,
	}, nil
}
