package engine

import "testing"

func TestRanksSortedNoGaps(t *testing.T) {
	if len(Ranks) != 27 {
		t.Fatalf("len(Ranks)=%d, want 27", len(Ranks))
	}
	for i, r := range Ranks {
		if r.Tier != i+1 {
			t.Fatalf("Ranks[%d].Tier=%d, want %d", i, r.Tier, i+1)
		}
		if i == 0 {
			if r.MinPoints != 0 {
				t.Fatalf("first rank MinPoints=%d, want 0", r.MinPoints)
			}
			continue
		}
		prev := Ranks[i-1]
		if r.MinPoints != prev.MaxPoints+1 {
			t.Fatalf("gap between tier %d and %d: %d..%d", prev.Tier, r.Tier, prev.MaxPoints, r.MinPoints)
		}
	}
	if !Ranks[len(Ranks)-1].IsTerminal() {
		t.Fatalf("last rank must be unbounded")
	}
}

func TestLevelForContainsPoints(t *testing.T) {
	samples := []int{0, 1, 199, 200, 499, 500, 999, 1000, 5499, 5500, 80000, 2039999, 2040000, 99999999}
	for _, p := range samples {
		r := LevelFor(p)
		if r.MinPoints > p {
			t.Fatalf("LevelFor(%d).MinPoints=%d > points", p, r.MinPoints)
		}
		if !r.IsTerminal() && p > r.MaxPoints {
			t.Fatalf("LevelFor(%d).MaxPoints=%d < points", p, r.MaxPoints)
		}
	}
}

func TestLevelBoundaries(t *testing.T) {
	if got := LevelFor(199).Tier; got != 1 {
		t.Fatalf("LevelFor(199)=%d, want 1", got)
	}
	if got := LevelFor(200).Tier; got != 2 {
		t.Fatalf("LevelFor(200)=%d, want 2", got)
	}
	if got := LevelFor(0).Tier; got != 1 {
		t.Fatalf("LevelFor(0)=%d, want 1", got)
	}
	if got := LevelFor(2040000).Tier; got != 27 {
		t.Fatalf("LevelFor(2040000)=%d, want 27", got)
	}
}

func TestProgressToNext(t *testing.T) {
	// Mid tier 1: 0..199, at 100 points half the band is behind us.
	p := ProgressToNext(100)
	if p.PointsRemaining != 100 {
		t.Fatalf("PointsRemaining=%d, want 100", p.PointsRemaining)
	}
	if p.Percent != 50 {
		t.Fatalf("Percent=%v, want 50", p.Percent)
	}

	// Terminal tier reports complete.
	p = ProgressToNext(3000000)
	if p.PointsRemaining != 0 || p.Percent != 100 {
		t.Fatalf("terminal progress=%+v, want {0 100}", p)
	}
}

func TestLevelUpDetection(t *testing.T) {
	old := LevelFor(150)
	jumped := LevelFor(250)
	if !(jumped.Tier > old.Tier) {
		t.Fatalf("150 -> 250 should level up (tiers %d -> %d)", old.Tier, jumped.Tier)
	}
	same := LevelFor(199)
	if same.Tier != old.Tier {
		t.Fatalf("150 and 199 should share a tier")
	}
}
