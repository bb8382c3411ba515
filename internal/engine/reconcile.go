package engine

import (
	"context"

	"ascend/internal/dateutil"
)

// MaxCatchUpDays bounds the reconcile walk so a corrupted cursor loaded
// from disk cannot produce a pathological loop.
const MaxCatchUpDays = 3650

// ReconcileReport summarizes one catch-up pass.
type ReconcileReport struct {
	TotalPointPenalty int
	TotalHealthLost   int
	DaysProcessed     int
	PenalizedDays     []dateutil.Key
}

// Reconcile settles every day between the catch-up cursor and today.
//
// Two states: up to date (cursor == today, all-zero no-op) and behind.
// When behind, every day strictly after the cursor through yesterday is
// charged in chronological order, then the cursor unconditionally advances
// to today — including on the zero-day branch (cursor == yesterday),
// otherwise the cursor would lag one day forever. A second call in a row
// therefore finds the cursor current and short-circuits, which is what
// makes session-start reconciliation idempotent.
func (s *Service) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	p, err := s.getProgress(ctx)
	if err != nil {
		return nil, err
	}

	today := dateutil.Today()
	if p.SelectedDay != nil {
		today = *p.SelectedDay
	}

	report := &ReconcileReport{}
	// The cursor only moves forward. A cursor at or past today means the
	// day was already visited (possibly via CompleteTask); never regress it.
	if !p.LastProcessed.Before(today) {
		return report, nil
	}

	start := p.LastProcessed.AddDays(1)
	if dateutil.DaysBetween(start, today) > MaxCatchUpDays {
		start = today.AddDays(-MaxCatchUpDays)
	}

	for day := start; day.Before(today); day = day.AddDays(1) {
		dayReport, err := s.ApplyDailyPenalty(ctx, day)
		if err != nil {
			return nil, err
		}
		report.DaysProcessed++
		report.TotalPointPenalty += dayReport.PointPenalty
		report.TotalHealthLost += dayReport.HealthLost
		if dayReport.PointPenalty > 0 || dayReport.HealthLost > 0 {
			report.PenalizedDays = append(report.PenalizedDays, day)
		}
	}

	// Re-read: ApplyDailyPenalty mutates the aggregate.
	p, err = s.getProgress(ctx)
	if err != nil {
		return nil, err
	}
	p.LastProcessed = today
	if err := s.progress.Update(ctx, p); err != nil {
		return nil, err
	}
	return report, nil
}
