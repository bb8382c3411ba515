package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ascend/internal/dateutil"
	"ascend/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewService(db)
}

func addTask(t *testing.T, svc *Service, name string, diff Difficulty, category Category, repeatable bool) int64 {
	t.Helper()
	id, err := svc.AddTask(context.Background(), AddTaskInput{
		Name:       name,
		Difficulty: diff,
		Category:   category,
		Repeatable: repeatable,
	})
	if err != nil {
		t.Fatalf("AddTask(%q): %v", name, err)
	}
	return id
}

func setCursor(t *testing.T, svc *Service, day dateutil.Key) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.ProgressRepo().GetOrCreateMain(ctx, storage.DefaultSettings())
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	p.LastProcessed = day
	if err := svc.ProgressRepo().Update(ctx, p); err != nil {
		t.Fatalf("update progress: %v", err)
	}
}

func TestReconcileThreeMissedDays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addTask(t, svc, "Meditate", DifficultyMedium, CategoryMandatory, false)
	// Last present four days ago; the three days since then went unmet.
	setCursor(t, svc, dateutil.Today().AddDays(-4))

	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if rep.DaysProcessed != 3 {
		t.Fatalf("DaysProcessed=%d, want 3", rep.DaysProcessed)
	}
	if rep.TotalHealthLost != 45 {
		t.Fatalf("TotalHealthLost=%d, want 45", rep.TotalHealthLost)
	}
	if rep.TotalPointPenalty != 45 {
		t.Fatalf("TotalPointPenalty=%d, want 45", rep.TotalPointPenalty)
	}
	if len(rep.PenalizedDays) != 3 {
		t.Fatalf("PenalizedDays=%v, want 3 entries", rep.PenalizedDays)
	}

	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.Health != 55 {
		t.Fatalf("health=%d, want 55", p.Health)
	}
	if p.TotalPoints != 0 {
		t.Fatalf("points=%d, want 0 (floor-clamped)", p.TotalPoints)
	}
	if p.LastProcessed != dateutil.Today() {
		t.Fatalf("cursor=%v, want today", p.LastProcessed)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addTask(t, svc, "Meditate", DifficultyMedium, CategoryMandatory, false)
	setCursor(t, svc, dateutil.Today().AddDays(-2))

	if _, err := svc.Reconcile(ctx); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	before, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}

	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if rep.DaysProcessed != 0 || rep.TotalHealthLost != 0 || rep.TotalPointPenalty != 0 || len(rep.PenalizedDays) != 0 {
		t.Fatalf("second reconcile not a no-op: %+v", rep)
	}

	after, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if after.Health != before.Health || after.TotalPoints != before.TotalPoints || after.LastProcessed != before.LastProcessed {
		t.Fatalf("second reconcile mutated state: before=%+v after=%+v", before, after)
	}
}

func TestReconcileZeroDaysBranchAdvancesCursor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Cursor at yesterday: no day strictly between cursor and today,
	// but the cursor must still advance.
	setCursor(t, svc, dateutil.Today().AddDays(-1))

	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if rep.DaysProcessed != 0 {
		t.Fatalf("DaysProcessed=%d, want 0", rep.DaysProcessed)
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.LastProcessed != dateutil.Today() {
		t.Fatalf("cursor=%v, want today", p.LastProcessed)
	}
}

func TestReconcileNoMandatoryTasksIsHarmless(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addTask(t, svc, "Stretch", DifficultyEasy, CategoryOptional, true)
	setCursor(t, svc, dateutil.Today().AddDays(-6))

	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if rep.DaysProcessed != 5 {
		t.Fatalf("DaysProcessed=%d, want 5", rep.DaysProcessed)
	}
	if rep.TotalHealthLost != 0 || rep.TotalPointPenalty != 0 || len(rep.PenalizedDays) != 0 {
		t.Fatalf("optional-only catalog was penalized: %+v", rep)
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.Health != p.MaxHealth {
		t.Fatalf("health=%d, want untouched %d", p.Health, p.MaxHealth)
	}
}

func TestCompleteEpicTaskScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Write the great novel", DifficultyEpic, CategoryMandatory, false)

	res, err := svc.CompleteTask(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Points != 80 {
		t.Fatalf("points=%d, want 80", res.Points)
	}
	if res.LevelUp {
		t.Fatalf("LevelUp=true, want false (80 points stays in tier 1)")
	}
	if res.LevelAfter != 1 {
		t.Fatalf("LevelAfter=%d, want 1", res.LevelAfter)
	}
	if res.HealthRecovered != 6 {
		t.Fatalf("HealthRecovered=%d, want 6", res.HealthRecovered)
	}

	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.TotalPoints != 80 {
		t.Fatalf("total points=%d, want 80", p.TotalPoints)
	}
	// Health was already at the cap; recovery clamps there.
	if p.Health != p.MaxHealth {
		t.Fatalf("health=%d, want clamped at %d", p.Health, p.MaxHealth)
	}
	if p.Streak != 1 {
		t.Fatalf("streak=%d, want 1", p.Streak)
	}
	if p.LastProcessed != dateutil.Today() {
		t.Fatalf("cursor=%v, want today (completed day must not be re-penalized)", p.LastProcessed)
	}
}

func TestCompleteHealthRecoveryBelowCap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Walk", DifficultyTrivial, CategoryMandatory, false)

	p, err := svc.ProgressRepo().GetOrCreateMain(ctx, storage.DefaultSettings())
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	p.Health = 50
	if err := svc.ProgressRepo().Update(ctx, p); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	p, err = svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.Health != 52 {
		t.Fatalf("health=%d, want 52", p.Health)
	}
}

func TestCompleteNonRepeatableTwiceRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Journal", DifficultyEasy, CategoryMandatory, false)

	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("first CompleteTask: %v", err)
	}
	before, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	countBefore, err := svc.CompletionRepo().CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}

	_, err = svc.CompleteTask(ctx, id)
	var rejected AlreadyCompletedError
	if !errors.As(err, &rejected) {
		t.Fatalf("second CompleteTask err=%v, want AlreadyCompletedError", err)
	}
	if rejected.TaskID != id {
		t.Fatalf("rejected task=%d, want %d", rejected.TaskID, id)
	}

	after, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if after.TotalPoints != before.TotalPoints || after.Health != before.Health {
		t.Fatalf("rejection mutated state: before=%+v after=%+v", before, after)
	}
	countAfter, err := svc.CompletionRepo().CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if countAfter != countBefore {
		t.Fatalf("completion log grew on rejection: %d -> %d", countBefore, countAfter)
	}
}

func TestCompleteRepeatableTwiceAllowed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Drink water", DifficultyTrivial, CategoryOptional, true)

	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("first CompleteTask: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("second CompleteTask: %v", err)
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.TotalPoints != 20 {
		t.Fatalf("total points=%d, want 20", p.TotalPoints)
	}
}

func TestCompleteUnknownTask(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CompleteTask(context.Background(), 999)
	var notFound TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err=%v, want TaskNotFoundError", err)
	}
	if notFound.ID != 999 {
		t.Fatalf("notFound.ID=%d, want 999", notFound.ID)
	}
}

func TestHealthNeverLeavesBounds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addTask(t, svc, "Epic grind", DifficultyEpic, CategoryMandatory, false)
	// 5 missed days at 40 health each far exceeds the 100 starting health.
	setCursor(t, svc, dateutil.Today().AddDays(-6))

	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if rep.TotalHealthLost != 200 {
		t.Fatalf("TotalHealthLost=%d, want nominal 200", rep.TotalHealthLost)
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.Health != 0 {
		t.Fatalf("health=%d, want clamped at 0", p.Health)
	}

	// Recovery can never push past the cap either.
	p.Health = p.MaxHealth - 1
	if err := svc.ProgressRepo().Update(ctx, p); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	id := addTask(t, svc, "Nap", DifficultyEpic, CategoryOptional, true)
	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	p, err = svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.Health != p.MaxHealth {
		t.Fatalf("health=%d, want %d", p.Health, p.MaxHealth)
	}
}

func TestDeleteTaskCascadesCompletions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Temp", DifficultyEasy, CategoryOptional, true)
	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	if err := svc.DeleteTask(ctx, id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	n, err := svc.CompletionRepo().CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if n != 0 {
		t.Fatalf("orphan completions remain: %d", n)
	}

	err = svc.DeleteTask(ctx, id)
	var notFound TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("second delete err=%v, want TaskNotFoundError", err)
	}
}

func TestSelectedDayOverride(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Read", DifficultyMedium, CategoryMandatory, false)

	day := dateutil.Today().AddDays(2)
	if err := svc.SetSelectedDay(ctx, day); err != nil {
		t.Fatalf("SetSelectedDay: %v", err)
	}

	cursorBefore, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}

	got, err := svc.SelectedDay(ctx)
	if err != nil {
		t.Fatalf("SelectedDay: %v", err)
	}
	if got != day {
		t.Fatalf("SelectedDay=%v, want %v", got, day)
	}

	// Setting the override alone must not move the catch-up cursor.
	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.LastProcessed != cursorBefore.LastProcessed {
		t.Fatalf("override moved cursor: %v -> %v", cursorBefore.LastProcessed, p.LastProcessed)
	}

	// Completing stamps the event with the simulated day and advances the
	// cursor through the normal path.
	res, err := svc.CompleteTask(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Points != 30 {
		t.Fatalf("points=%d, want 30", res.Points)
	}
	completions, err := svc.CompletionRepo().ListByDay(ctx, day)
	if err != nil {
		t.Fatalf("ListByDay: %v", err)
	}
	if len(completions) != 1 {
		t.Fatalf("completions on simulated day=%d, want 1", len(completions))
	}
	p, err = svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.LastProcessed != day {
		t.Fatalf("cursor=%v, want simulated day %v", p.LastProcessed, day)
	}

	if err := svc.ClearSelectedDay(ctx); err != nil {
		t.Fatalf("ClearSelectedDay: %v", err)
	}
	got, err = svc.SelectedDay(ctx)
	if err != nil {
		t.Fatalf("SelectedDay: %v", err)
	}
	if got != dateutil.Today() {
		t.Fatalf("SelectedDay after clear=%v, want today", got)
	}
}

func TestSimulatedSkipAheadPenalizesMissedDays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addTask(t, svc, "Train", DifficultyHard, CategoryMandatory, false)
	if _, err := svc.Reconcile(ctx); err != nil {
		t.Fatalf("initial Reconcile: %v", err)
	}

	// Jump three days into the future without completing anything. The day
	// the user was last present (the cursor) is exempt; the two fully
	// skipped days in between are charged.
	if err := svc.SetSelectedDay(ctx, dateutil.Today().AddDays(3)); err != nil {
		t.Fatalf("SetSelectedDay: %v", err)
	}
	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if rep.DaysProcessed != 2 {
		t.Fatalf("DaysProcessed=%d, want 2", rep.DaysProcessed)
	}
	if rep.TotalHealthLost != 50 {
		t.Fatalf("TotalHealthLost=%d, want 50", rep.TotalHealthLost)
	}
}

func TestResetClearsEverything(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Old habit", DifficultyMedium, CategoryMandatory, false)
	if _, err := svc.CompleteTask(ctx, id); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}

	tasks, err := svc.TaskRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks remain after reset: %d", len(tasks))
	}
	n, err := svc.CompletionRepo().CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if n != 0 {
		t.Fatalf("completions remain after reset: %d", n)
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.TotalPoints != 0 || p.Level != 1 || p.Streak != 0 || p.Health != p.MaxHealth {
		t.Fatalf("progress not reset: %+v", p)
	}
}
