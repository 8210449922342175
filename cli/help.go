package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/catalogdocs/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 60
const minWidth = 40

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) []string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// SetStyledHelp applies the styled help to cmd. Subcommands inherit it.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
}

// PrintError prints a styled error message to stderr with help hint.
func PrintError(cmd *cobra.Command, err error) {
	t := theme.DefaultTheme
	red := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Red)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", t.Muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// splitExamples separates a trailing "Examples:" section from a long description.
func splitExamples(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return long, ""
}

// styleCommandLine colors the binary, the subcommand and the flags of an
// example invocation.
func styleCommandLine(t *theme.Theme, line, rootCmd string) string {
	binary := lipgloss.NewStyle().Foreground(t.Colors.Cyan)
	sub := lipgloss.NewStyle().Foreground(t.Colors.Blue)
	flag := lipgloss.NewStyle().Foreground(t.Colors.Violet)

	parts := strings.Fields(line)
	for i, part := range parts {
		switch {
		case i == 0 && part == rootCmd:
			parts[i] = binary.Render(part)
		case strings.HasPrefix(part, "-"):
			parts[i] = flag.Render(part)
		case i == 1:
			parts[i] = sub.Render(part)
		}
	}
	return "  " + strings.Join(parts, " ")
}

func styledHelpFunc(cmd *cobra.Command, _ []string) {
	t := theme.DefaultTheme
	out := cmd.OutOrStdout()
	section := lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange)
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Orange)
	width := getTerminalWidth() - 2

	fmt.Fprintln(out, " "+title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := splitExamples(cmd.Long)
	if cmd.Short != "" {
		for _, line := range wrapText(cmd.Short, width) {
			fmt.Fprintln(out, " "+t.Italic.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(out)
		for _, line := range wrapText(description, width) {
			fmt.Fprintln(out, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(out, "\n "+section.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(out, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(out, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		writeCommands(out, t, cmd, section)
	}

	writeFlags(out, t, cmd, section)

	if cmd.Example != "" {
		examples = cmd.Example
	}
	if examples != "" {
		fmt.Fprintln(out, "\n "+section.Render("EXAMPLES"))
		rootCmd := cmd.Root().Name()
		for _, line := range strings.Split(examples, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				fmt.Fprintln(out)
			case strings.HasPrefix(trimmed, "#"):
				fmt.Fprintln(out, " "+t.Muted.Render(trimmed))
			default:
				fmt.Fprintln(out, " "+styleCommandLine(t, trimmed, rootCmd))
			}
		}
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(out, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

func writeCommands(out io.Writer, t *theme.Theme, cmd *cobra.Command, section lipgloss.Style) {
	name := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue)

	maxLen := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() && len(sub.Name()) > maxLen {
			maxLen = len(sub.Name())
		}
	}

	fmt.Fprintln(out, "\n "+section.Render("COMMANDS"))
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		padding := strings.Repeat(" ", maxLen-len(sub.Name()))
		fmt.Fprintf(out, " %s%s  %s\n", name.Render(sub.Name()), padding, sub.Short)
	}
}

// writeFlags lists local flags in detail for leaf commands and inline for
// commands with subcommands. Inherited flags are shown inline.
func writeFlags(out io.Writer, t *theme.Theme, cmd *cobra.Command, section lipgloss.Style) {
	local := visibleFlags(cmd.LocalFlags())
	if len(local) > 0 {
		if cmd.HasAvailableSubCommands() {
			fmt.Fprintln(out, "\n "+t.Muted.Render("Flags: "+inlineFlags(local)))
		} else {
			flagStyle := lipgloss.NewStyle().Foreground(t.Colors.Violet)
			fmt.Fprintln(out, "\n "+section.Render("FLAGS"))
			maxLen := 0
			for _, f := range local {
				if n := len(formatFlagName(f)); n > maxLen {
					maxLen = n
				}
			}
			for _, f := range local {
				name := formatFlagName(f)
				usage := f.Usage
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" && f.DefValue != "0s" {
					usage += t.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
				}
				fmt.Fprintf(out, " %s%s  %s\n", flagStyle.Render(name), strings.Repeat(" ", maxLen-len(name)), usage)
			}
		}
	}

	if inherited := visibleFlags(cmd.InheritedFlags()); len(inherited) > 0 {
		fmt.Fprintln(out, "\n "+t.Muted.Render("Global flags: "+inlineFlags(inherited)))
	}
}

func visibleFlags(set *pflag.FlagSet) []*pflag.Flag {
	var flags []*pflag.Flag
	set.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			flags = append(flags, f)
		}
	})
	return flags
}

func inlineFlags(flags []*pflag.Flag) string {
	names := make([]string, 0, len(flags))
	for _, f := range flags {
		if f.Shorthand != "" {
			names = append(names, fmt.Sprintf("-%s/--%s", f.Shorthand, f.Name))
		} else {
			names = append(names, "--"+f.Name)
		}
	}
	return strings.Join(names, ", ")
}

// formatFlagName returns a formatted flag string like "-f, --flag" or "--flag".
func formatFlagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}
