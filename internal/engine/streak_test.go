package engine

import (
	"testing"
	"time"

	"ascend/internal/dateutil"
	"ascend/internal/storage"
)

func day(offset int) dateutil.Key {
	return (dateutil.Key{Year: 2024, Month: time.June, Day: 15}).AddDays(offset)
}

func completion(taskID int64, d dateutil.Key) storage.Completion {
	return storage.Completion{TaskID: taskID, Day: d}
}

func TestCurrentStreakCountsConsecutiveDays(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Category: string(CategoryMandatory)},
		{ID: 2, Category: string(CategoryOptional)},
	}
	completions := []storage.Completion{
		completion(1, day(0)),
		completion(1, day(-1)),
		completion(1, day(-2)),
		// day(-3) missed
		completion(1, day(-4)),
	}
	if got := CurrentStreak(tasks, completions, day(0)); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}
}

func TestCurrentStreakRequiresAllMandatory(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Category: string(CategoryMandatory)},
		{ID: 2, Category: string(CategoryMandatory)},
	}
	completions := []storage.Completion{
		completion(1, day(0)),
		completion(2, day(0)),
		completion(1, day(-1)), // task 2 missing yesterday
		completion(2, day(-2)),
		completion(1, day(-2)),
	}
	if got := CurrentStreak(tasks, completions, day(0)); got != 1 {
		t.Fatalf("streak=%d, want 1", got)
	}
}

func TestCurrentStreakZeroWhenTodayUnmet(t *testing.T) {
	tasks := []storage.Task{{ID: 1, Category: string(CategoryMandatory)}}
	completions := []storage.Completion{completion(1, day(-1))}
	if got := CurrentStreak(tasks, completions, day(0)); got != 0 {
		t.Fatalf("streak=%d, want 0", got)
	}
}

func TestCurrentStreakNoMandatoryTasksBreaks(t *testing.T) {
	// No mandatory tasks means no day can qualify, by design.
	tasks := []storage.Task{{ID: 2, Category: string(CategoryOptional)}}
	completions := []storage.Completion{completion(2, day(0)), completion(2, day(-1))}
	if got := CurrentStreak(tasks, completions, day(0)); got != 0 {
		t.Fatalf("streak=%d, want 0", got)
	}
}

func TestCurrentStreakOptionalCompletionsIgnored(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Category: string(CategoryMandatory)},
		{ID: 2, Category: string(CategoryOptional)},
	}
	// Only the optional task was done yesterday.
	completions := []storage.Completion{
		completion(1, day(0)),
		completion(2, day(-1)),
		completion(1, day(-2)),
	}
	if got := CurrentStreak(tasks, completions, day(0)); got != 1 {
		t.Fatalf("streak=%d, want 1", got)
	}
}

func TestCurrentStreakCappedAtHorizon(t *testing.T) {
	tasks := []storage.Task{{ID: 1, Category: string(CategoryMandatory)}}
	var completions []storage.Completion
	for i := 0; i < StreakHorizonDays+30; i++ {
		completions = append(completions, completion(1, day(-i)))
	}
	if got := CurrentStreak(tasks, completions, day(0)); got != StreakHorizonDays {
		t.Fatalf("streak=%d, want capped at %d", got, StreakHorizonDays)
	}
}
