package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ascend theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconHeart   = "❤️"
	IconFlame   = "🔥"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconLoop    = "🔁"
	IconPin     = "📌"
	IconClock   = "⏳"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("BREAKTHROUGH")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// HealthColor maps a health percentage to the bar color.
// Thresholds follow the original 20/40/60 ramp.
func HealthColor(health, maxHealth int) lipgloss.Color {
	if maxHealth <= 0 {
		return lipgloss.Color("#EF4444")
	}
	pct := health * 100 / maxHealth
	switch {
	case pct <= 20:
		return lipgloss.Color("#EF4444") // red
	case pct <= 40:
		return lipgloss.Color("#F59E0B") // orange
	case pct <= 60:
		return lipgloss.Color("#EAB308") // yellow
	default:
		return lipgloss.Color("#10B981") // green
	}
}

// HealthBar renders a fixed-width bar like ████████░░ 80/100.
func HealthBar(health, maxHealth, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := 0
	if maxHealth > 0 {
		filled = health * width / maxHealth
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	style := lipgloss.NewStyle().Foreground(HealthColor(health, maxHealth))
	bar := style.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d", bar, health, maxHealth)
}

// ProgressBar renders percent progress within the current rank.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent) * width / 100
	bar := Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %.0f%%", bar, percent)
}

// RankStyle renders rank names in the rank's table color.
func RankStyle(hexColor string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hexColor))
}

func CategoryText(category string) string {
	switch category {
	case "mandatory":
		return Warn.Render("mandatory")
	case "optional":
		return Muted.Render("optional")
	default:
		return Muted.Render(category)
	}
}
