package engine

import (
	"context"

	"ascend/internal/dateutil"
)

// PenaltyReport describes the cost of one calendar day's unmet mandatory
// tasks. Amounts are the nominal penalties, even when clamping absorbed
// part of them.
type PenaltyReport struct {
	PointPenalty int
	HealthLost   int
	UnmetTasks   []string
}

// ApplyDailyPenalty settles one calendar day: every mandatory task without
// a completion on that day is charged. When nothing is unmet the state is
// left untouched and a zero report is returned, so calling it on an
// already-clean day never causes a spurious write.
//
// The function does not consult the catch-up cursor; the reconciler is
// responsible for visiting each day at most once.
func (s *Service) ApplyDailyPenalty(ctx context.Context, day dateutil.Key) (*PenaltyReport, error) {
	mandatory, err := s.tasks.ListByCategory(ctx, string(CategoryMandatory))
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	completed := make(map[int64]bool, len(completions))
	for _, c := range completions {
		completed[c.TaskID] = true
	}

	report := &PenaltyReport{}
	for _, t := range mandatory {
		if completed[t.ID] {
			continue
		}
		penalty, err := PenaltyForMiss(Difficulty(t.Difficulty))
		if err != nil {
			return nil, err
		}
		report.PointPenalty += penalty.Points
		report.HealthLost += penalty.Health
		report.UnmetTasks = append(report.UnmetTasks, t.Name)
	}
	if len(report.UnmetTasks) == 0 {
		return report, nil
	}

	p, err := s.getProgress(ctx)
	if err != nil {
		return nil, err
	}
	newHealth := ClampHealth(p.Health-report.HealthLost, p.MaxHealth)
	newPoints := p.TotalPoints - report.PointPenalty
	if newPoints < 0 {
		newPoints = 0
	}
	if newHealth == p.Health && newPoints == p.TotalPoints {
		return report, nil
	}

	p.Health = newHealth
	p.TotalPoints = newPoints
	p.Level = LevelFor(p.TotalPoints).Tier
	if err := s.progress.Update(ctx, p); err != nil {
		return nil, err
	}
	return report, nil
}
