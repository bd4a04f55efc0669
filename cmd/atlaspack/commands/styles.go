package commands

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#00FF99")
	colorHeader  = lipgloss.Color("#874BFD")
	colorTextSub = lipgloss.Color("#64748B")
	colorDanger  = lipgloss.Color("#FF0055")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHeader).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextSub).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	bestStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	dimStyle   = lipgloss.NewStyle().Foreground(colorTextSub)
	errorStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHeader).
			Padding(0, 1)
)
