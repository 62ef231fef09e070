// Package cli renders Jarvis output for the terminal: message styles, money
// formatting, tables and the import progress bar.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the CLI output.
var (
	PrimaryColor = lipgloss.Color("#3B82F6")
	IncomeColor  = lipgloss.Color("#22C55E")
	SpendColor   = lipgloss.Color("#EF4444")
	WarningColor = lipgloss.Color("#F59E0B")
	InfoColor    = lipgloss.Color("#06B6D4")
	SubtleColor  = lipgloss.Color("#6B7280")
	BorderColor  = lipgloss.Color("#374151")
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// IncomeStyle colors money coming in and successful results.
	IncomeStyle = lipgloss.NewStyle().Foreground(IncomeColor)

	// SpendStyle colors money going out and failures.
	SpendStyle = lipgloss.NewStyle().Foreground(SpendColor)

	// WarningStyle formats warnings such as failed price lookups.
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)

	// InfoStyle formats hints and empty-state messages.
	InfoStyle = lipgloss.NewStyle().Foreground(InfoColor)

	// SubtleStyle formats table borders and secondary text.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// BoldStyle highlights totals.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)

	// TableCellStyle pads table cells.
	TableCellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	JarvisIcon  = "💼"
	PlaneIcon   = "✈️"
	HeartIcon   = "❤️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return IncomeStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return SpendStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the app icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(JarvisIcon + " " + title)
}

// Income renders text in the income color.
func Income(text string) string {
	return IncomeStyle.Render(text)
}

// Spending renders text in the spending color.
func Spending(text string) string {
	return SpendStyle.Render(text)
}

// Swatch renders a category icon and name in the category's color.
func Swatch(color, icon, name string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(icon + " " + name)
}

// RenderBox renders content under title inside a rounded box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}
