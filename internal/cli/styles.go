package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"fundexplorer/internal/fund"
)

// Terminal colors (ANSI 256).
const (
	ColorGain   = lipgloss.Color("42")
	ColorLoss   = lipgloss.Color("196")
	ColorMuted  = lipgloss.Color("241")
	ColorHeader = lipgloss.Color("39")
	ColorError  = lipgloss.Color("203")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	labelStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	gainStyle   = lipgloss.NewStyle().Foreground(ColorGain).Bold(true)
	lossStyle   = lipgloss.NewStyle().Foreground(ColorLoss).Bold(true)
	neutralText = lipgloss.NewStyle().Foreground(ColorMuted).Bold(true)
)

// renderReturns formats a percentage change with its sign, green for gains
// and red for losses.
func renderReturns(s fund.Stats) string {
	if !s.HasReturns {
		return mutedStyle.Render("n/a")
	}

	text := s.Returns.StringFixed(2) + "%"
	switch s.Returns.Cmp(decimal.Zero) {
	case 1:
		return gainStyle.Render("+" + text)
	case -1:
		return lossStyle.Render(text)
	default:
		return neutralText.Render(text)
	}
}
