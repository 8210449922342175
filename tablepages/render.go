// Package tablepages keeps the per-table documentation pages and the tables
// index in step with the schema export.
package tablepages

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/grovetools/catalogdocs/catalog"
)

const (
	blockOpen  = "```yaml"
	blockClose = "```"

	blurbLimit    = 140
	blurbTruncate = 137
)

// RenderBlock renders the fenced metadata block for a table. Columns are
// listed alphabetically; empty descriptions render as an empty folded scalar.
func RenderBlock(t *catalog.Table) string {
	var lines []string
	lines = append(lines,
		blockOpen,
		"version: 2",
		"",
		"models:",
		"  - name: "+t.Name,
		"    description: >",
	)
	lines = appendFolded(lines, "      ", t.Description)
	lines = append(lines, "    columns:")

	for _, col := range t.ColumnNames() {
		lines = append(lines,
			"      - name: "+col,
			"        description: >",
		)
		lines = appendFolded(lines, "          ", t.Columns[col])
		lines = append(lines, "")
	}

	lines = append(lines, blockClose)
	return strings.Join(lines, "\n")
}

func appendFolded(lines []string, indent, text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return append(lines, indent)
	}
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, indent+l)
	}
	return lines
}

// Splice replaces the first fenced yaml block of content with block. It
// reports false and returns content unchanged when no complete block exists.
func Splice(content, block string) (string, bool) {
	start := strings.Index(content, blockOpen)
	if start == -1 {
		return content, false
	}
	rel := strings.Index(content[start+len(blockOpen):], blockClose)
	if rel == -1 {
		return content, false
	}
	end := start + len(blockOpen) + rel

	return content[:start] + block + content[end+len(blockClose):], true
}

// NewDocument renders a new page for a table: minimal front matter followed
// by the metadata block.
func NewDocument(t *catalog.Table) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: '%s'\n", t.Name)
	b.WriteString("description: ''\n")
	b.WriteString("---\n\n")
	b.WriteString(RenderBlock(t))
	b.WriteString("\n")
	return b.String()
}

// Blurb shortens a description to its first sentence, truncating with an
// ellipsis when that sentence is longer than 140 characters.
func Blurb(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	first := s
	if i := strings.Index(s, "."); i >= 0 {
		first = s[:i+1]
	}

	if r := []rune(first); len(r) > blurbLimit {
		first = strings.TrimRightFunc(string(r[:blurbTruncate]), unicode.IsSpace) + "..."
	}
	return first
}
