// Package theme holds the terminal palette shared by help output, the
// pretty logger and the log formatter.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Status icons.
const (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconError   = "✗"
	IconInfo    = "•"
)

// Colors is the terminal palette. ANSI indexes are used so the user's
// terminal theme decides the actual shades.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Orange    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Blue      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
}

// Theme is a set of styles built from Colors.
type Theme struct {
	Colors Colors

	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Accent  lipgloss.Style
	Path    lipgloss.Style
	Value   lipgloss.Style
}

// DefaultTheme is used when no other theme is passed around.
var DefaultTheme = New()

func terminalColors() Colors {
	return Colors{
		Green:     lipgloss.Color("2"),
		Yellow:    lipgloss.Color("3"),
		Red:       lipgloss.Color("1"),
		Orange:    lipgloss.Color("208"),
		Cyan:      lipgloss.Color("6"),
		Blue:      lipgloss.Color("4"),
		Violet:    lipgloss.Color("5"),
		MutedText: lipgloss.Color("8"),
	}
}

// New builds the default theme.
func New() *Theme {
	colors := terminalColors()
	return &Theme{
		Colors:  colors,
		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Blue),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colors.MutedText),
		Italic:  lipgloss.NewStyle().Italic(true),
		Accent:  lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(colors.Cyan).Italic(true),
		Value:   lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),
	}
}

// ColorEnabled reports whether styled output should keep its colors: NO_COLOR
// is unset and f is a terminal.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureColor strips colors from all lipgloss output when f cannot show
// them.
func ConfigureColor(f *os.File) {
	if !ColorEnabled(f) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
