// Package console formats messages, issue reports and tables for the
// terminal. Styling is applied only when stdout is a terminal; otherwise
// output is plain text that is safe to pipe or compare in tests.
package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/githubnext/flowlint/pkg/tty"
)

// isTTY is swapped by tests.
var isTTY = tty.IsStdoutTerminal

var (
	errorStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"})
	warningStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"})
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"})
	successStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"})
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C7A89", Dark: "#6272A4"})
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func applyStyle(style lipgloss.Style, text string) string {
	if !isTTY() {
		return text
	}
	return style.Render(text)
}

// FormatErrorMessage prefixes msg with a red cross.
func FormatErrorMessage(msg string) string {
	return applyStyle(errorStyle, "✗ ") + msg
}

// FormatWarningMessage prefixes msg with a warning sign.
func FormatWarningMessage(msg string) string {
	return applyStyle(warningStyle, "⚠ ") + msg
}

// FormatInfoMessage prefixes msg with an info marker.
func FormatInfoMessage(msg string) string {
	return applyStyle(infoStyle, "ℹ ") + msg
}

// FormatSuccessMessage prefixes msg with a check mark.
func FormatSuccessMessage(msg string) string {
	return applyStyle(successStyle, "✓ ") + msg
}

// FormatHeader renders a section header.
func FormatHeader(text string) string {
	return applyStyle(headerStyle, text)
}
