package errors

import (
	stderrors "errors"
	"fmt"
)

// Error type constants
const (
	ManifestError     = "MANIFEST_ERROR"
	IOError           = "IO_ERROR"
	IntegrityError    = "INTEGRITY_ERROR"
	ExternalToolError = "EXTERNAL_TOOL_ERROR"
)

// RunError is a structured error describing why a flash run stopped.
type RunError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	StepIndex int    `json:"step_index"` // 1-based, 0 when not tied to a step
	Path      string `json:"path,omitempty"`
	Hint      string `json:"hint,omitempty"`
	Output    string `json:"output,omitempty"`
	Err       error  `json:"-"`
}

func (e *RunError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.StepIndex > 0 {
		return fmt.Sprintf("[%s] step %d: %s", e.Type, e.StepIndex, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

func (e *RunError) Unwrap() error { return e.Err }

func NewManifestError(msg string, err error) *RunError {
	return &RunError{Type: ManifestError, Message: msg, Err: err}
}

func NewIOError(path, msg string, err error) *RunError {
	return &RunError{Type: IOError, Path: path, Message: msg, Err: err}
}

func NewIntegrityError(path, filename, expected, actual string) *RunError {
	return &RunError{
		Type:    IntegrityError,
		Path:    path,
		Message: fmt.Sprintf("MD5 verification failed for %s: expected %s, got %s", filename, expected, actual),
		Hint:    "Re-download the firmware package or re-run with --ignore-md5 if you trust the images",
	}
}

func NewExternalToolError(msg, output string, err error) *RunError {
	return &RunError{Type: ExternalToolError, Message: msg, Output: output, Err: err}
}

// AtStep sets the step index and returns the same error for chaining.
func (e *RunError) AtStep(index int) *RunError {
	e.StepIndex = index
	return e
}

// KindOf returns the Type of the first RunError in err's chain, or "".
func KindOf(err error) string {
	var re *RunError
	if stderrors.As(err, &re) {
		return re.Type
	}
	return ""
}
