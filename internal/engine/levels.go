package engine

import "math"

// Rank is one band of cumulative points mapped to a display tier.
// MaxPoints of the terminal rank is math.MaxInt (unbounded).
type Rank struct {
	Tier      int
	Name      string
	MinPoints int
	MaxPoints int
	Color     string
}

func (r Rank) IsTerminal() bool {
	return r.MaxPoints == math.MaxInt
}

// Ranks is the ordered cultivation ladder. It must stay sorted ascending
// by MinPoints with no gaps; LevelFor scans it from the top so the first
// match wins regardless.
var Ranks = []Rank{
	{Tier: 1, Name: "Early Qi Refining", MinPoints: 0, MaxPoints: 199, Color: "#9CA3AF"},
	{Tier: 2, Name: "Middle Qi Refining", MinPoints: 200, MaxPoints: 499, Color: "#6B7280"},
	{Tier: 3, Name: "Late Qi Refining", MinPoints: 500, MaxPoints: 999, Color: "#4B5563"},

	{Tier: 4, Name: "Early Foundation", MinPoints: 1000, MaxPoints: 1999, Color: "#059669"},
	{Tier: 5, Name: "Middle Foundation", MinPoints: 2000, MaxPoints: 3499, Color: "#047857"},
	{Tier: 6, Name: "Late Foundation", MinPoints: 3500, MaxPoints: 5499, Color: "#065F46"},

	{Tier: 7, Name: "Early Golden Core", MinPoints: 5500, MaxPoints: 7999, Color: "#D97706"},
	{Tier: 8, Name: "Middle Golden Core", MinPoints: 8000, MaxPoints: 11499, Color: "#B45309"},
	{Tier: 9, Name: "Late Golden Core", MinPoints: 11500, MaxPoints: 15999, Color: "#92400E"},

	{Tier: 10, Name: "Early Nascent Soul", MinPoints: 16000, MaxPoints: 22999, Color: "#7C3AED"},
	{Tier: 11, Name: "Middle Nascent Soul", MinPoints: 23000, MaxPoints: 31999, Color: "#6D28D9"},
	{Tier: 12, Name: "Late Nascent Soul", MinPoints: 32000, MaxPoints: 43999, Color: "#5B21B6"},

	{Tier: 13, Name: "Early Spirit Transformation", MinPoints: 44000, MaxPoints: 59999, Color: "#DC2626"},
	{Tier: 14, Name: "Middle Spirit Transformation", MinPoints: 60000, MaxPoints: 79999, Color: "#B91C1C"},
	{Tier: 15, Name: "Late Spirit Transformation", MinPoints: 80000, MaxPoints: 104999, Color: "#991B1B"},

	{Tier: 16, Name: "Early Unity", MinPoints: 105000, MaxPoints: 139999, Color: "#BE185D"},
	{Tier: 17, Name: "Middle Unity", MinPoints: 140000, MaxPoints: 184999, Color: "#9D174D"},
	{Tier: 18, Name: "Late Unity", MinPoints: 185000, MaxPoints: 239999, Color: "#831843"},

	{Tier: 19, Name: "Early Mahayana", MinPoints: 240000, MaxPoints: 319999, Color: "#1E40AF"},
	{Tier: 20, Name: "Middle Mahayana", MinPoints: 320000, MaxPoints: 419999, Color: "#1D4ED8"},
	{Tier: 21, Name: "Late Mahayana", MinPoints: 420000, MaxPoints: 549999, Color: "#2563EB"},

	{Tier: 22, Name: "Early Tribulation", MinPoints: 550000, MaxPoints: 719999, Color: "#7C2D12"},
	{Tier: 23, Name: "Middle Tribulation", MinPoints: 720000, MaxPoints: 939999, Color: "#A16207"},
	{Tier: 24, Name: "Late Tribulation", MinPoints: 940000, MaxPoints: 1219999, Color: "#CA8A04"},

	{Tier: 25, Name: "Early Ascension", MinPoints: 1220000, MaxPoints: 1579999, Color: "#C026D3"},
	{Tier: 26, Name: "Middle Ascension", MinPoints: 1580000, MaxPoints: 2039999, Color: "#A21CAF"},
	{Tier: 27, Name: "Late Ascension", MinPoints: 2040000, MaxPoints: math.MaxInt, Color: "#86198F"},
}

// LevelFor resolves cumulative points to a rank: the highest rank whose
// MinPoints <= points, scanned from the top of the table downward.
func LevelFor(points int) Rank {
	for i := len(Ranks) - 1; i >= 0; i-- {
		if points >= Ranks[i].MinPoints {
			return Ranks[i]
		}
	}
	return Ranks[0]
}

// LevelProgress describes how far into the current rank a point total is.
type LevelProgress struct {
	PointsRemaining int
	Percent         float64
}

// ProgressToNext reports remaining points and percent progress within the
// current rank. The terminal rank reports 0 remaining at 100%.
func ProgressToNext(points int) LevelProgress {
	rank := LevelFor(points)
	if rank.IsTerminal() {
		return LevelProgress{PointsRemaining: 0, Percent: 100}
	}

	remaining := rank.MaxPoints + 1 - points
	if remaining < 0 {
		remaining = 0
	}
	span := rank.MaxPoints - rank.MinPoints + 1
	percent := float64(points-rank.MinPoints) / float64(span) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return LevelProgress{PointsRemaining: remaining, Percent: percent}
}
