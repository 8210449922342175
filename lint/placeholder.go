package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Pattern is a named placeholder phrase.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

// Placeholders lists the phrases that must not appear in published pages.
var Placeholders = []Pattern{
	{"coming_soon", regexp.MustCompile(`(?i)\bcoming soon\b`)},
	{"under_construction", regexp.MustCompile(`(?i)\bunder construction\b`)},
	{"todo", regexp.MustCompile(`\bTODO\b`)},
	{"tbd", regexp.MustCompile(`\bTBD\b`)},
	{"lorem_ipsum", regexp.MustCompile(`(?i)\blorem\b|\bipsum\b`)},
	{"tablestakes_typo", regexp.MustCompile(`(?i)\btablestakes\b`)},
}

// Finding is one placeholder match.
type Finding struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Pattern string `json:"pattern"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Pattern)
}

// FindPlaceholders reports every placeholder pattern matching a line of
// content. A line matching several patterns yields one finding per pattern.
func FindPlaceholders(file, content string) []Finding {
	var findings []Finding
	for i, line := range splitLines(content) {
		for _, p := range Placeholders {
			if p.Regexp.MatchString(line) {
				findings = append(findings, Finding{File: file, Line: i + 1, Pattern: p.Name})
			}
		}
	}
	return findings
}

// ScanPlaceholders checks every .md and .mdx page under root.
func ScanPlaceholders(root string, excludes []string) ([]Finding, error) {
	walker, err := NewWalker(root, excludes, ".md", ".mdx")
	if err != nil {
		return nil, err
	}
	files, err := walker.Files()
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		findings = append(findings, FindPlaceholders(rel, string(data))...)
	}
	return findings, nil
}
