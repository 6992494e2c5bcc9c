package ui

import "github.com/charmbracelet/lipgloss"

// Color palette: a single lime accent on grays.
const (
	ColorLime     = "154" // Primary accent, highlighted matches
	ColorLimeDim  = "106" // Selection marker
	ColorWhite    = "255" // Result titles
	ColorGray     = "245" // Secondary text, links
	ColorDarkGray = "238" // Separators, hints
	ColorRed      = "196" // Load failures
	ColorYellow   = "220" // Warnings
)

// Styles holds all styles used by the search UI and CLI output.
type Styles struct {
	Header    lipgloss.Style
	Prompt    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Link      lipgloss.Style
	Highlight lipgloss.Style
	Dim       lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLimeDim)),
		Link:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)).Underline(true),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:    plain,
		Prompt:    plain,
		Status:    plain,
		Error:     plain,
		Warning:   plain,
		Title:     plain,
		Selected:  plain,
		Link:      plain,
		Highlight: plain,
		Dim:       plain,
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
