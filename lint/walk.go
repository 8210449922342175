// Package lint implements the documentation tree checks: placeholder
// language, page inventory and SQL example column accuracy.
package lint

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moby/patternmatcher"
)

// Walker lists documentation files under a root directory. Hidden entries and
// paths matching an exclude pattern are skipped.
type Walker struct {
	root       string
	excludes   *patternmatcher.PatternMatcher
	extensions []string
}

// NewWalker creates a walker for files with the given extensions. Exclude
// patterns use .dockerignore syntax relative to root.
func NewWalker(root string, excludes []string, extensions ...string) (*Walker, error) {
	pm, err := patternmatcher.New(excludes)
	if err != nil {
		return nil, err
	}
	return &Walker{root: root, excludes: pm, extensions: extensions}, nil
}

// Files returns the matching files as slash-separated paths relative to the
// root, sorted.
func (w *Walker) Files() ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		excluded, err := w.excludes.MatchesOrParentMatches(rel)
		if err != nil {
			return err
		}
		if excluded {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && w.wants(d.Name()) {
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (w *Walker) wants(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
