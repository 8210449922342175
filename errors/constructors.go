package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *DocsError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *DocsError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ExportRead creates an error for a schema export that could not be read
func ExportRead(path string, err error) *DocsError {
	return Wrap(err, ErrCodeExportRead, fmt.Sprintf("failed to read schema export: %s", path)).
		WithDetail("path", path)
}

// ExportInvalid creates an error for a schema export that could not be decoded
func ExportInvalid(path string, err error) *DocsError {
	return Wrap(err, ErrCodeExportInvalid, fmt.Sprintf("failed to parse schema export: %s", path)).
		WithDetail("path", path)
}

// GroupNotFound creates an error for a navigation group missing from the manifest
func GroupNotFound(group string) *DocsError {
	return New(ErrCodeGroupNotFound, fmt.Sprintf("navigation group '%s' not found", group)).
		WithDetail("group", group)
}

// WriteFailed creates a file write failure error
func WriteFailed(path string, err error) *DocsError {
	return Wrap(err, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", path)).
		WithDetail("path", path)
}

// CheckFailed creates an error for a documentation check that reported issues
func CheckFailed(check string, issues int) *DocsError {
	return New(ErrCodeCheckFailed, fmt.Sprintf("%s check failed with %d issue(s)", check, issues)).
		WithDetail("check", check).
		WithDetail("issues", issues)
}

// ModelRead creates an error for a model document that could not be read
func ModelRead(path string, err error) *DocsError {
	return Wrap(err, ErrCodeModelRead, fmt.Sprintf("failed to read model file: %s", path)).
		WithDetail("path", path)
}

// ModelInvalid creates an error for a model document that could not be parsed
func ModelInvalid(path string, err error) *DocsError {
	return Wrap(err, ErrCodeModelInvalid, fmt.Sprintf("failed to parse model file: %s", path)).
		WithDetail("path", path)
}
