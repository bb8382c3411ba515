package storage

import (
	"time"

	"ascend/internal/dateutil"
)

type Task struct {
	ID          int64
	Name        string
	Description *string
	Difficulty  int
	Category    string // "mandatory" | "optional"
	Repeatable  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Completion is one append-only completion event. Points are the value
// awarded at completion time, never recomputed.
type Completion struct {
	ID          string
	TaskID      int64
	CompletedAt time.Time
	Day         dateutil.Key
	Points      int
}

// Progress is the single mutable progression aggregate.
type Progress struct {
	Key         string
	TotalPoints int
	Level       int
	Streak      int
	Health      int
	MaxHealth   int
	// LastProcessed is the catch-up cursor: the most recent day for which
	// missed-task penalties have been settled.
	LastProcessed dateutil.Key
	// SelectedDay is the debug time-travel override; nil means the real
	// calendar day.
	SelectedDay *dateutil.Key
	Settings    Settings
}

// Settings is opaque to the engine; it is round-tripped losslessly on
// export/import for the UI shell.
type Settings struct {
	AnimationsEnabled bool   `json:"animationsEnabled"`
	SoundEnabled      bool   `json:"soundEnabled"`
	Theme             string `json:"theme"`
	Notifications     bool   `json:"notifications"`
}

// DefaultSettings matches the first-run defaults of the UI shell.
func DefaultSettings() Settings {
	return Settings{
		AnimationsEnabled: true,
		SoundEnabled:      true,
		Theme:             "light",
		Notifications:     true,
	}
}
