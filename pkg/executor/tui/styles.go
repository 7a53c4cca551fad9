package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	coralPink   = lipgloss.Color("#FFCCCB") // Lighter coral accent - secondary
	mintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - success/accept states
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	dimGray     = lipgloss.Color("#374151") // Dim gray - faded surfaces
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
)

// Common Styles
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	okStyle = lipgloss.NewStyle().
		Foreground(mintGreen)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(coralPink).
			Padding(1, 2)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			PaddingLeft(2)

	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(salmonPink).
				Bold(true).
				PaddingLeft(0)

	// OverlayTitleStyle is used for dialog titles
	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(salmonPink)

	// OverlayHelpStyle is used for help text and hints
	OverlayHelpStyle = lipgloss.NewStyle().
				Foreground(mutedGray).
				Italic(true)
)

// cellStyle selects how a screen cell is painted.
type cellStyle int

const (
	cellBlank cellStyle = iota
	cellBubbleSolid
	cellBubbleSoft
	cellBubbleFaint
	cellBubbleBold
	cellZoneIdle
	cellZoneHot
	cellFeedback
)

var cellStyles = map[cellStyle]lipgloss.Style{
	cellBlank:       lipgloss.NewStyle(),
	cellBubbleSolid: lipgloss.NewStyle().Foreground(salmonPink),
	cellBubbleSoft:  lipgloss.NewStyle().Foreground(coralPink),
	cellBubbleFaint: lipgloss.NewStyle().Foreground(dimGray),
	cellBubbleBold:  lipgloss.NewStyle().Foreground(salmonPink).Bold(true),
	cellZoneIdle:    lipgloss.NewStyle().Foreground(mutedGray),
	cellZoneHot:     lipgloss.NewStyle().Foreground(salmonPink).Bold(true),
	cellFeedback:    lipgloss.NewStyle().Foreground(mintGreen).Bold(true),
}
