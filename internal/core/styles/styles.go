// Package styles provides shared lipgloss v2 styles for CLI and TUI
// components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports, rebuilt whenever the theme changes.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Pane chrome.
	PaneStyle          lipgloss.Style
	PaneFocusedStyle   lipgloss.Style
	PaneTitleStyle     lipgloss.Style
	PaneTitleDimStyle  lipgloss.Style
	PaneCounterStyle   lipgloss.Style
	EmptyStateStyle    lipgloss.Style
	WordCountStyle     lipgloss.Style
	HelpStyle          lipgloss.Style
	SelectedRowStyle   lipgloss.Style
	NormalRowStyle     lipgloss.Style
	RowIndexStyle      lipgloss.Style
	OriginalTextStyle  lipgloss.Style
	CorrectedTextStyle lipgloss.Style

	// Status indicator.
	StatusReadyStyle      lipgloss.Style
	StatusProcessingStyle lipgloss.Style
	StatusErrorStyle      lipgloss.Style
	StatusTextStyle       lipgloss.Style

	// Activity log severities.
	LogInfoStyle    lipgloss.Style
	LogSuccessStyle lipgloss.Style
	LogErrorStyle   lipgloss.Style
	LogTimeStyle    lipgloss.Style
)

func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	PaneTitleDimStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	PaneCounterStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorWarning).
		Padding(0, 1).
		Bold(true)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Padding(1, 2)
	WordCountStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		PaddingLeft(1)

	SelectedRowStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	NormalRowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	RowIndexStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	OriginalTextStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	CorrectedTextStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	StatusReadyStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
	StatusProcessingStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	StatusTextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	LogInfoStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	LogSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	LogErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	LogTimeStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
}
