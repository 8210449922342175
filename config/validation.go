package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/grovetools/catalogdocs/errors"
)

var datasetNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateDatasetName("dataset", c.Dataset); err != nil {
		return err
	}

	if strings.TrimSpace(c.Navigation.Group) == "" {
		return errors.New(errors.ErrCodeConfigValidation, "navigation.group cannot be empty")
	}

	if !strings.HasPrefix(c.Pages.Extension, ".") || strings.ContainsAny(c.Pages.Extension, `/\`) {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid page extension: %s (must start with '.')", c.Pages.Extension)).
			WithDetail("extension", c.Pages.Extension)
	}

	if strings.ContainsAny(c.Pages.Index, `/\`) {
		return errors.New(errors.ErrCodeConfigValidation, "pages.index must be a file name, not a path").
			WithDetail("index", c.Pages.Index)
	}

	paths := map[string]string{
		"export":              c.Export,
		"navigation.manifest": c.Navigation.Manifest,
		"pages.dir":           c.Pages.Dir,
		"inspect.model":       c.Inspect.Model,
		"lint.root":           c.Lint.Root,
	}
	for field, path := range paths {
		if err := validatePath(field, path); err != nil {
			return err
		}
	}

	for i, src := range c.Lint.ColumnSources {
		field := fmt.Sprintf("lint.column_sources[%d]", i)
		if err := validateDatasetName(field+".dataset", src.Dataset); err != nil {
			return err
		}
		if src.Dir == "" {
			return errors.New(errors.ErrCodeConfigValidation, field+".dir cannot be empty")
		}
		if err := validatePath(field+".dir", src.Dir); err != nil {
			return err
		}
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid watch.debounce: %q (must be a positive duration such as 200ms)", c.Watch.Debounce)).
			WithDetail("debounce", c.Watch.Debounce)
	}

	return nil
}

func validateDatasetName(field, name string) error {
	if !datasetNameRegex.MatchString(name) {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s must start with a letter or underscore and contain only letters, numbers and underscores", field)).
			WithDetail(field, name)
	}
	return nil
}

// validatePath validates that a path is appropriate for the current OS
func validatePath(fieldName, path string) error {
	if path == "" {
		return nil
	}

	// Check for Windows absolute paths on Unix systems
	if runtime.GOOS != "windows" && filepath.IsAbs(path) && strings.Contains(path, "\\") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Windows-style path on Unix system", fieldName)).
			WithDetail("path", path)
	}

	// Check for Unix absolute paths on Windows systems
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Unix-style path on Windows system", fieldName)).
			WithDetail("path", path)
	}

	return nil
}
