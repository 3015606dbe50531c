// Package tui renders discovered editor installations: a static table for
// plain output and an interactive picker built on Bubble Tea.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader     = lipgloss.Color("39")
	ColorLabel      = lipgloss.Color("245")
	ColorMuted      = lipgloss.Color("240")
	ColorBest       = lipgloss.Color("42")
	ColorPrerelease = lipgloss.Color("214")
	ColorSelectedFg = lipgloss.Color("229")
	ColorSelectedBg = lipgloss.Color("57")
)

//nolint:gochecknoglobals // Shared styles.
var (
	headerStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	labelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	bestStyle     = lipgloss.NewStyle().Foreground(ColorBest).Bold(true)
	preStyle      = lipgloss.NewStyle().Foreground(ColorPrerelease)
	selectedStyle = lipgloss.NewStyle().Foreground(ColorSelectedFg).Background(ColorSelectedBg)
)
