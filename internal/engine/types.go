package engine

import (
	"fmt"
	"strings"
)

type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyEpic
}

// Category decides whether skipping a task on a given day costs the user.
type Category string

const (
	CategoryMandatory Category = "mandatory"
	CategoryOptional  Category = "optional"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryMandatory, CategoryOptional:
		return true
	default:
		return false
	}
}

// ParseCategory parses user input to a Category.
// Supported: mandatory, required, optional. Empty input defaults to mandatory.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "mandatory", "required":
		return CategoryMandatory, nil
	case "optional":
		return CategoryOptional, nil
	default:
		return "", fmt.Errorf("invalid category: %q", input)
	}
}
