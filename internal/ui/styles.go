// Package ui contains Lip Gloss style definitions and rendering helpers
// for CLI output.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/ngsteer/internal/compat"
)

var (
	// HeadingStyle renders section headings in listings.
	HeadingStyle = lipgloss.NewStyle().Bold(true)

	// SubtleStyle renders secondary detail like file paths and origins.
	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

	// BandStyle highlights the version band in detection output.
	BandStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"})

	stableStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"})
	experimentalStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"})
	unavailableStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
)

// StatusBadge renders a feature status with its color.
func StatusBadge(s compat.Status) string {
	switch s {
	case compat.StatusStable:
		return stableStyle.Render(s.String())
	case compat.StatusExperimental:
		return experimentalStyle.Render(s.String())
	default:
		return unavailableStyle.Render(s.String())
	}
}
