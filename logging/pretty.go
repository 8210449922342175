package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovetools/catalogdocs/theme"
	"golang.org/x/term"
)

const maxDividerWidth = 60

// PrettyLogger writes human-oriented status lines. Machine-readable results
// go to stdout separately.
type PrettyLogger struct {
	writer io.Writer
	theme  *theme.Theme
}

// NewPrettyLogger creates a pretty logger writing to Output.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: Output(),
		theme:  theme.DefaultTheme,
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// Success logs a success message with a checkmark
func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.theme.Success.Render(theme.IconSuccess),
		p.theme.Success.Render(message))
}

// InfoPretty logs an info message with pretty formatting
func (p *PrettyLogger) InfoPretty(message string) {
	fmt.Fprintf(p.writer, "%s\n", p.theme.Info.Render(message))
}

// WarnPretty logs a warning with pretty formatting
func (p *PrettyLogger) WarnPretty(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.theme.Warning.Render(theme.IconWarning),
		p.theme.Warning.Render(message))
}

// ErrorPretty logs an error with pretty formatting
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s",
		p.theme.Error.Render(theme.IconError),
		p.theme.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", p.theme.Error.Render(err.Error()))
	}
	fmt.Fprintln(p.writer)
}

// Field logs a key-value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.theme.Muted.Render(key),
		p.theme.Value.Render(fmt.Sprint(value)))
}

// Path logs a file path with special formatting
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.theme.Muted.Render(label),
		p.theme.Path.Render(path))
}

// List prints items as an indented list, at most limit of them. The number
// of items left out is reported on a final line.
func (p *PrettyLogger) List(items []string, limit int) {
	shown := items
	if limit > 0 && len(items) > limit {
		shown = items[:limit]
	}
	for _, item := range shown {
		fmt.Fprintf(p.writer, "  %s %s\n", p.theme.Muted.Render(theme.IconInfo), item)
	}
	if rest := len(items) - len(shown); rest > 0 {
		fmt.Fprintf(p.writer, "  %s\n", p.theme.Muted.Render(fmt.Sprintf("... and %d more", rest)))
	}
}

// Divider prints a rule as wide as the terminal, up to maxDividerWidth.
func (p *PrettyLogger) Divider() {
	fmt.Fprintln(p.writer, p.theme.Muted.Render(strings.Repeat("─", dividerWidth())))
}

// Blank prints a blank line
func (p *PrettyLogger) Blank() {
	fmt.Fprintln(p.writer)
}

func dividerWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 || width > maxDividerWidth {
		return maxDividerWidth
	}
	return width
}
