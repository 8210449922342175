package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/catalogdocs/errors"
	"github.com/grovetools/catalogdocs/theme"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Writer  io.Writer
}

// NewErrorHandler creates a new error handler writing to w
func NewErrorHandler(w io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Writer:  w,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	prefix := theme.DefaultTheme.Error.Render(theme.IconError)
	docsErr, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Writer, "%s Configuration not found: %v\n", prefix, docsErr.Details["path"])
		fmt.Fprintln(h.Writer, "Create catalogdocs.yml or pass --config.")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Writer, "%s Invalid configuration: %s\n", prefix, causeOf(docsErr))

	case errors.ErrCodeExportRead, errors.ErrCodeExportInvalid:
		fmt.Fprintf(h.Writer, "%s Could not load schema export %v: %s\n", prefix, docsErr.Details["path"], causeOf(docsErr))

	case errors.ErrCodeManifestRead, errors.ErrCodeManifestInvalid:
		fmt.Fprintf(h.Writer, "%s Could not load navigation manifest %v: %s\n", prefix, docsErr.Details["path"], causeOf(docsErr))

	case errors.ErrCodeModelRead, errors.ErrCodeModelInvalid:
		fmt.Fprintf(h.Writer, "%s Could not load model %v: %s\n", prefix, docsErr.Details["path"], causeOf(docsErr))

	case errors.ErrCodeWriteFailed:
		fmt.Fprintf(h.Writer, "%s Could not write %v: %s\n", prefix, docsErr.Details["path"], causeOf(docsErr))

	case errors.ErrCodeCheckFailed:
		fmt.Fprintf(h.Writer, "%s %s\n", prefix, docsErr.Message)

	default:
		fmt.Fprintf(h.Writer, "%s Error: %v\n", prefix, err)
	}

	// If verbose mode, show full error details
	if h.Verbose && docsErr != nil {
		fmt.Fprintf(h.Writer, "\nError details:\n%s\n", docsErr.ToJSON())
	}
	return err
}

// causeOf returns the underlying failure when there is one, else the message.
func causeOf(err *errors.DocsError) string {
	if err.Cause != nil {
		return err.Cause.Error()
	}
	return err.Message
}
