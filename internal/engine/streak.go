package engine

import (
	"ascend/internal/dateutil"
	"ascend/internal/storage"
)

// StreakHorizonDays bounds the backward scan.
const StreakHorizonDays = 365

// CurrentStreak counts consecutive days ending at asOf on which every
// mandatory task was completed. A day with zero mandatory tasks breaks the
// streak: there was nothing to uphold, so nothing counts.
//
// The streak is recomputed from the full log on every call instead of being
// maintained incrementally; that keeps it correct under deletes and
// backdated completions.
func CurrentStreak(tasks []storage.Task, completions []storage.Completion, asOf dateutil.Key) int {
	mandatory := make(map[int64]bool)
	for _, t := range tasks {
		if Category(t.Category) == CategoryMandatory {
			mandatory[t.ID] = true
		}
	}
	if len(mandatory) == 0 {
		return 0
	}

	completedByDay := make(map[dateutil.Key]map[int64]bool)
	for _, c := range completions {
		set := completedByDay[c.Day]
		if set == nil {
			set = make(map[int64]bool)
			completedByDay[c.Day] = set
		}
		set[c.TaskID] = true
	}

	streak := 0
	day := asOf
	for streak < StreakHorizonDays {
		done := completedByDay[day]
		qualified := true
		for id := range mandatory {
			if !done[id] {
				qualified = false
				break
			}
		}
		if !qualified {
			break
		}
		streak++
		day = day.AddDays(-1)
	}
	return streak
}
