package corrector

import (
	"errors"
	"fmt"
)

// Validation errors raised before any request is issued.
var (
	// ErrEmptyText rejects empty or whitespace-only input.
	ErrEmptyText = errors.New("text is empty")
	// ErrNotDocx rejects uploads whose filename lacks the .docx extension.
	ErrNotDocx = errors.New("only .docx files are supported")
)

// APIError is an application-level failure: either a non-2xx status with a
// parseable error body, or a well-formed response carrying success=false.
// The message comes from the server when it supplied one.
type APIError struct {
	StatusCode int    // 0 when the HTTP exchange itself succeeded
	Message    string // server-supplied error string, may be empty
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	case e.Message != "":
		return "api error: " + e.Message
	default:
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
}

// IsValidationError reports whether err was raised by client-side input
// validation rather than by the transport or the server.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrNotDocx)
}
