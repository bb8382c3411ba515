package engine

import (
	"context"

	"ascend/internal/dateutil"
)

// DayStat is one bucket of the recent-activity series.
type DayStat struct {
	Day         dateutil.Key
	Points      int
	Completions int
}

// CategoryStat summarizes completion volume for one task category.
type CategoryStat struct {
	Category  Category
	Tasks     int
	Completed int
}

type Statistics struct {
	TotalTasks          int
	TotalCompletions    int
	CompletionRate      float64
	LastWeek            []DayStat
	AveragePointsPerDay float64
	CurrentStreak       int
	StreakBonus         int
	ByCategory          []CategoryStat
}

// Stats aggregates the display statistics from the catalog and the log.
func (s *Service) Stats(ctx context.Context) (*Statistics, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	asOf, err := s.SelectedDay(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalTasks:       len(tasks),
		TotalCompletions: len(completions),
	}
	if len(tasks) > 0 {
		stats.CompletionRate = float64(len(completions)) / float64(len(tasks)) * 100
	}

	pointsByDay := make(map[dateutil.Key]int)
	countByDay := make(map[dateutil.Key]int)
	for _, c := range completions {
		pointsByDay[c.Day] += c.Points
		countByDay[c.Day]++
	}

	weekPoints := 0
	for i := 6; i >= 0; i-- {
		day := asOf.AddDays(-i)
		stat := DayStat{
			Day:         day,
			Points:      pointsByDay[day],
			Completions: countByDay[day],
		}
		weekPoints += stat.Points
		stats.LastWeek = append(stats.LastWeek, stat)
	}
	stats.AveragePointsPerDay = float64(weekPoints) / 7

	stats.CurrentStreak = CurrentStreak(tasks, completions, asOf)
	stats.StreakBonus = StreakBonus(stats.CurrentStreak)

	taskCategory := make(map[int64]Category, len(tasks))
	for _, category := range []Category{CategoryMandatory, CategoryOptional} {
		stat := CategoryStat{Category: category}
		for _, t := range tasks {
			if Category(t.Category) == category {
				stat.Tasks++
				taskCategory[t.ID] = category
			}
		}
		for _, c := range completions {
			if taskCategory[c.TaskID] == category {
				stat.Completed++
			}
		}
		stats.ByCategory = append(stats.ByCategory, stat)
	}

	return stats, nil
}
