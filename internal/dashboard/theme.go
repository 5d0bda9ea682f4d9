package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glory-app/glory/internal/event"
)

var (
	colorKill   = lipgloss.Color("#f59e0b")
	colorDeath  = lipgloss.Color("#dc2626")
	colorAssist = lipgloss.Color("#3b82f6")
	colorCreep  = lipgloss.Color("#a855f7")
	colorJoin   = lipgloss.Color("#22c55e")
	colorBorder = lipgloss.Color("#4b5563")
	colorDimmed = lipgloss.Color("#6b7280")
	colorBright = lipgloss.Color("#f9fafb")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDimmed)
	inGameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorJoin)
	okStyle     = lipgloss.NewStyle().Foreground(colorJoin)
	warnStyle   = lipgloss.NewStyle().Foreground(colorKill)
	statStyle   = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center).
			MarginRight(1).
			BorderStyle(lipgloss.RoundedBorder())
	frameStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(colorBorder)
)

func eventColor(n event.Name) lipgloss.Color {
	switch n {
	case event.Kill:
		return colorKill
	case event.Death:
		return colorDeath
	case event.Assist:
		return colorAssist
	case event.CreepKilled:
		return colorCreep
	case event.GameJoin:
		return colorJoin
	default:
		return colorDimmed
	}
}
