package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	URLStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Underline(true)
)

// Package styles
var (
	PackageStyle = lipgloss.NewStyle().
			Foreground(PackageColor).
			Bold(true)

	DestinationStyle = lipgloss.NewStyle().
				Foreground(DestinationColor)

	CommitStyle = lipgloss.NewStyle().
			Foreground(CommitColor)
)

// Status indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
)

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// PackageName renders dest/name with each part in its own style
func PackageName(dest, name string) string {
	return DestinationStyle.Render(dest) + MutedStyle.Render("/") + PackageStyle.Render(name)
}
