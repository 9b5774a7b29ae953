// Package fastboot wraps the external fastboot executable: locating it,
// probing connected devices, and running one invocation at a time.
package fastboot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

// Result holds the outcome of one fastboot invocation.
type Result struct {
	Output   string        // stdout and stderr interleaved
	Stdout   string
	ExitCode int
	Duration time.Duration
	Err      error // set when the process could not be started or waited on
}

// Failed reports whether the invocation exited non-zero or never ran.
func (r *Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// Runner runs fastboot with the given arguments.
type Runner interface {
	Run(ctx context.Context, args ...string) *Result
}

// Tool is a located fastboot executable.
type Tool struct {
	Path string
}

// New returns a Tool for the executable at path.
func New(path string) *Tool {
	return &Tool{Path: path}
}

// Executable returns the path the tool was located at.
func (t *Tool) Executable() string { return t.Path }

// Run executes fastboot directly (no shell) and captures its combined output.
// It blocks until the process exits; there is no timeout.
func (t *Tool) Run(ctx context.Context, args ...string) *Result {
	cmd := exec.CommandContext(ctx, t.Path, args...)
	var out, stdout bytes.Buffer
	cmd.Stdout = io.MultiWriter(&out, &stdout)
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()
	res := &Result{Duration: time.Since(start)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = 1
			res.Err = err
		}
	}
	res.Output = out.String()
	res.Stdout = stdout.String()

	slog.Debug("fastboot finished",
		"path", t.Path,
		"args", args,
		"exit_code", res.ExitCode,
		"duration", res.Duration.Round(time.Millisecond),
	)
	return res
}
