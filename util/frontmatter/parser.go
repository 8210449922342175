// Package frontmatter provides lightweight YAML frontmatter parsing for documentation pages.
// Only top-level scalar keys are read; nested YAML is ignored.
package frontmatter

import (
	"bufio"
	"io"
	"strings"
)

// Metadata represents the page fields checked by the inventory.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Parse extracts metadata from the frontmatter of a page. The page must open
// with a '---' line and the block must be closed by another; ok is false
// otherwise.
func Parse(r io.Reader) (meta Metadata, ok bool, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	closed := false

	for scanner.Scan() {
		line := scanner.Text()

		if first {
			first = false
			if !strings.HasPrefix(line, "---") {
				return Metadata{}, false, nil
			}
			continue
		}

		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}

		// Simple key: value parsing, top-level keys only
		key, value, found := strings.Cut(line, ":")
		if !found || key != strings.TrimSpace(key) {
			continue
		}
		value = unquote(strings.TrimSpace(value))

		switch key {
		case "title":
			meta.Title = value
		case "description":
			meta.Description = value
		case "icon":
			meta.Icon = value
		}
	}

	if err := scanner.Err(); err != nil {
		return Metadata{}, false, err
	}
	if !closed {
		return Metadata{}, false, nil
	}
	return meta, true, nil
}

// ParseString extracts metadata from a string containing markdown with frontmatter.
func ParseString(content string) (Metadata, bool, error) {
	return Parse(strings.NewReader(content))
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}
