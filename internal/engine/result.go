package engine

import dagerrors "github.com/irixaligned/swat/internal/errors"

// Step statuses.
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
	StatusCancelled = "cancelled"
	StatusDryRun    = "dry-run"
	StatusExplain   = "explain"
)

// Result is the structured output of a manifest execution.
type Result struct {
	RunID      string               `json:"run_id"`
	Manifest   string               `json:"manifest"`
	Policy     Policy               `json:"policy"`
	Success    bool                 `json:"success"`
	FailedStep int                  `json:"failed_step,omitempty"` // 1-based
	Steps      []StepResult         `json:"steps"`
	Artifacts  []string             `json:"artifacts,omitempty"`
	Errors     []dagerrors.RunError `json:"errors,omitempty"`
}

// StepResult describes the outcome of a single step. It is not modified
// after the step finishes.
type StepResult struct {
	Index       int    `json:"index"`
	Operation   string `json:"operation"`
	Status      string `json:"status"` // success, failed, skipped, cancelled, dry-run, explain
	Message     string `json:"message,omitempty"`
	Description string `json:"description,omitempty"`
	Command     string `json:"command,omitempty"`
	ExitCode    int    `json:"exit_code,omitempty"`
	Output      string `json:"output,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Err         error  `json:"-"`
}

// Succeeded reports whether the step ran to completion without error.
func (sr StepResult) Succeeded() bool {
	return sr.Status == StatusSuccess
}
