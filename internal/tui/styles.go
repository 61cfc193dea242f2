// Package tui holds the small Bubble Tea prompts used by the interactive
// commands. Models only report what the user chose; the caller acts on it.
package tui

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves a prompt with Esc or Ctrl+C.
var ErrCancelled = errors.New("cancelled by user")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	recStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF3B30"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 2)
)
