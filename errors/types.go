package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Schema export errors
	ErrCodeExportRead    ErrorCode = "EXPORT_READ"
	ErrCodeExportInvalid ErrorCode = "EXPORT_INVALID"

	// Navigation manifest errors
	ErrCodeManifestRead    ErrorCode = "MANIFEST_READ"
	ErrCodeManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrCodeGroupNotFound   ErrorCode = "GROUP_NOT_FOUND"

	// Page errors
	ErrCodeBlockNotFound ErrorCode = "BLOCK_NOT_FOUND"
	ErrCodeWriteFailed   ErrorCode = "WRITE_FAILED"

	// Model document errors
	ErrCodeModelRead    ErrorCode = "MODEL_READ"
	ErrCodeModelInvalid ErrorCode = "MODEL_INVALID"

	// Documentation checks
	ErrCodeCheckFailed ErrorCode = "CHECK_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// DocsError represents a structured error with context
type DocsError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *DocsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DocsError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *DocsError) WithDetail(key string, value interface{}) *DocsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *DocsError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new DocsError
func New(code ErrorCode, message string) *DocsError {
	return &DocsError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DocsError
func Wrap(err error, code ErrorCode, message string) *DocsError {
	return &DocsError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific DocsError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, searching the unwrap chain.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	docsErr, ok := err.(*DocsError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return docsErr.Code
}

// As returns the first DocsError in the unwrap chain.
func As(err error) (*DocsError, bool) {
	for err != nil {
		if docsErr, ok := err.(*DocsError); ok {
			return docsErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}
