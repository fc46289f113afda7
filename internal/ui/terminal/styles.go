package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"workouttimer/internal/core/model"
	"workouttimer/internal/core/plan"
)

// Phase palette shared with the GUI display.
var (
	ColorPrep     = lipgloss.Color("#f59e0b")
	ColorWork     = lipgloss.Color("#22c55e")
	ColorRest     = lipgloss.Color("#3b82f6")
	ColorCooldown = lipgloss.Color("#ef4444")
	ColorFinish   = lipgloss.Color("#a855f7")
	ColorIdle     = lipgloss.Color("#64748b")
	ColorFg       = lipgloss.Color("#e2e8f0")
)

var (
	StyleTitle = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(ColorIdle)
	StyleClock = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	StyleBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// KindColor returns the colour for a phase kind.
func KindColor(kind plan.Kind) lipgloss.Color {
	switch kind {
	case plan.KindPrep:
		return ColorPrep
	case plan.KindWork:
		return ColorWork
	case plan.KindRest:
		return ColorRest
	case plan.KindCooldown:
		return ColorCooldown
	default:
		return ColorIdle
	}
}

// KindStyle returns a bold foreground style for a phase kind.
func KindStyle(kind plan.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(KindColor(kind)).Bold(true)
}

// ModeStyle returns the style used for a mode name in listings.
func ModeStyle(mode model.Mode) lipgloss.Style {
	color := ColorRest
	switch mode {
	case model.ModeTabata:
		color = ColorWork
	case model.ModeBoxing:
		color = ColorCooldown
	}
	return lipgloss.NewStyle().Foreground(color)
}
