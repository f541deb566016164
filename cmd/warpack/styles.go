// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared across all CLI output. Chosen for dark terminal
// backgrounds with good contrast.
const (
	// ColorPrimary is purple - titles, headers, primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - success states and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - errors and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorHighlight is blue - scope names, coordinates, paths.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Base styles built from the palette.
var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// HighlightStyle is for scope names and coordinates.
	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
