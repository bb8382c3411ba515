package engine

import "fmt"

const (
	// PenaltyDivisor: missing a mandatory task costs half its award,
	// floored (floor(points * 0.5)).
	PenaltyDivisor = 2

	// StreakBonusStep grants a flat bonus per full week of streak.
	StreakBonusStep   = 7
	StreakBonusPoints = 5

	// HealthWarningPercent is the bar percentage at or below which the
	// UI shows the critical state.
	HealthWarningPercent = 30
)

// Reward is what completing a task earns.
type Reward struct {
	Points int
	Health int
}

// Penalty is what missing a mandatory task for a day costs.
type Penalty struct {
	Points int
	Health int
}

func pointsForDifficulty(d Difficulty) (int, error) {
	switch d {
	case DifficultyTrivial:
		return 10, nil
	case DifficultyEasy:
		return 20, nil
	case DifficultyMedium:
		return 30, nil
	case DifficultyHard:
		return 50, nil
	case DifficultyEpic:
		return 80, nil
	default:
		return 0, fmt.Errorf("invalid difficulty: %d", d)
	}
}

func healthRecoveryForDifficulty(d Difficulty) int {
	switch d {
	case DifficultyTrivial:
		return 2
	case DifficultyEasy:
		return 3
	case DifficultyMedium:
		return 4
	case DifficultyHard:
		return 5
	case DifficultyEpic:
		return 6
	default:
		return 0
	}
}

func healthPenaltyForDifficulty(d Difficulty) int {
	switch d {
	case DifficultyTrivial:
		return 5
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 15
	case DifficultyHard:
		return 25
	case DifficultyEpic:
		return 40
	default:
		return 0
	}
}

// RewardForCompletion returns the fixed award for a difficulty tier.
func RewardForCompletion(d Difficulty) (Reward, error) {
	points, err := pointsForDifficulty(d)
	if err != nil {
		return Reward{}, err
	}
	return Reward{Points: points, Health: healthRecoveryForDifficulty(d)}, nil
}

// PenaltyForMiss returns the fixed cost of an unmet mandatory task.
func PenaltyForMiss(d Difficulty) (Penalty, error) {
	points, err := pointsForDifficulty(d)
	if err != nil {
		return Penalty{}, err
	}
	return Penalty{
		Points: points / PenaltyDivisor,
		Health: healthPenaltyForDifficulty(d),
	}, nil
}

// StreakBonus returns the weekly streak bonus for display. It is shown in
// statistics but never added to the cumulative total.
func StreakBonus(streak int) int {
	if streak <= 1 {
		return 0
	}
	return streak / StreakBonusStep * StreakBonusPoints
}

// ClampHealth bounds health to [0, maxHealth].
func ClampHealth(health, maxHealth int) int {
	if health < 0 {
		return 0
	}
	if health > maxHealth {
		return maxHealth
	}
	return health
}

// IsHealthCritical reports whether health is at or below the warning
// threshold of the bar.
func IsHealthCritical(health, maxHealth int) bool {
	if maxHealth <= 0 {
		return true
	}
	return health*100 <= HealthWarningPercent*maxHealth
}
