package engine

import "testing"

func TestRewardTableExact(t *testing.T) {
	cases := []struct {
		diff           Difficulty
		points         int
		healthRecovery int
	}{
		{DifficultyTrivial, 10, 2},
		{DifficultyEasy, 20, 3},
		{DifficultyMedium, 30, 4},
		{DifficultyHard, 50, 5},
		{DifficultyEpic, 80, 6},
	}
	for _, c := range cases {
		r, err := RewardForCompletion(c.diff)
		if err != nil {
			t.Fatalf("RewardForCompletion(%d): %v", c.diff, err)
		}
		if r.Points != c.points || r.Health != c.healthRecovery {
			t.Fatalf("RewardForCompletion(%d)=%+v, want {%d %d}", c.diff, r, c.points, c.healthRecovery)
		}
	}
}

func TestPenaltyTableExact(t *testing.T) {
	cases := []struct {
		diff          Difficulty
		points        int // floor(award * 0.5)
		healthPenalty int
	}{
		{DifficultyTrivial, 5, 5},
		{DifficultyEasy, 10, 10},
		{DifficultyMedium, 15, 15},
		{DifficultyHard, 25, 25},
		{DifficultyEpic, 40, 40},
	}
	for _, c := range cases {
		p, err := PenaltyForMiss(c.diff)
		if err != nil {
			t.Fatalf("PenaltyForMiss(%d): %v", c.diff, err)
		}
		if p.Points != c.points || p.Health != c.healthPenalty {
			t.Fatalf("PenaltyForMiss(%d)=%+v, want {%d %d}", c.diff, p, c.points, c.healthPenalty)
		}
	}
}

func TestInvalidDifficultyRejected(t *testing.T) {
	if _, err := RewardForCompletion(0); err == nil {
		t.Fatalf("expected error for difficulty 0")
	}
	if _, err := PenaltyForMiss(6); err == nil {
		t.Fatalf("expected error for difficulty 6")
	}
}

func TestStreakBonus(t *testing.T) {
	cases := []struct {
		streak int
		want   int
	}{
		{0, 0}, {1, 0}, {6, 0}, {7, 5}, {13, 5}, {14, 10}, {70, 50},
	}
	for _, c := range cases {
		if got := StreakBonus(c.streak); got != c.want {
			t.Fatalf("StreakBonus(%d)=%d, want %d", c.streak, got, c.want)
		}
	}
}

func TestClampHealth(t *testing.T) {
	if got := ClampHealth(-10, 100); got != 0 {
		t.Fatalf("ClampHealth(-10)=%d, want 0", got)
	}
	if got := ClampHealth(150, 100); got != 100 {
		t.Fatalf("ClampHealth(150)=%d, want 100", got)
	}
	if got := ClampHealth(42, 100); got != 42 {
		t.Fatalf("ClampHealth(42)=%d, want 42", got)
	}
}

func TestIsHealthCritical(t *testing.T) {
	if !IsHealthCritical(30, 100) {
		t.Fatalf("30/100 should be critical")
	}
	if IsHealthCritical(31, 100) {
		t.Fatalf("31/100 should not be critical")
	}
}
