package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/irixaligned/swat/internal/artifact"
	"github.com/irixaligned/swat/internal/command"
	dagerrors "github.com/irixaligned/swat/internal/errors"
	"github.com/irixaligned/swat/internal/hasher"
	"github.com/irixaligned/swat/internal/manifest"
)

// Mode controls execution behavior.
type Mode int

const (
	ModeExplain Mode = iota // validate and build commands only
	ModeDryRun              // also verify image hashes
	ModeRun                 // invoke fastboot
)

// failedMarker is printed by fastboot for partition-level failures, sometimes
// while still exiting 0.
const failedMarker = "FAILED"

// Execute runs the manifest steps in order. The first failing step stops the
// run: later steps are recorded as skipped and never invoked, and nothing
// already applied is undone. The returned error is the failing step's
// *errors.RunError; the Result is always non-nil.
func Execute(ctx context.Context, m *manifest.Manifest, rc *RunContext, mode Mode) (*Result, error) {
	result := &Result{
		RunID:    rc.RunID,
		Manifest: m.Path,
		Policy:   rc.Policy,
		Success:  true,
	}

	var store *artifact.Store
	if mode == ModeRun && rc.ArtifactDir != "" {
		var err error
		store, err = artifact.New(rc.RunID, rc.ArtifactDir)
		if err != nil {
			slog.Warn("artifact store disabled", "error", err)
		} else {
			result.Artifacts = []string{store.BaseDir}
		}
	}

	var runErr error
	for i, step := range m.Steps {
		index := i + 1
		if runErr != nil {
			result.Steps = append(result.Steps, StepResult{Index: index, Operation: step.Operation, Status: StatusSkipped})
			continue
		}

		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("run cancelled before step %d: %w", index, err)
			result.Success = false
			result.FailedStep = index
			result.Steps = append(result.Steps, StepResult{Index: index, Operation: step.Operation, Status: StatusCancelled, Message: err.Error()})
			continue
		}

		slog.Info("running step", "manifest", m.Path, "index", index, "operation", step.Operation)
		sr := executeStep(ctx, m, index, len(m.Steps), step, rc, mode)
		result.Steps = append(result.Steps, *sr)

		if store != nil && sr.Output != "" {
			if err := store.WriteStepOutput(index, step.Operation, sr.Output); err != nil {
				slog.Warn("failed to store step output", "index", index, "error", err)
			}
		}

		if sr.Status == StatusFailed {
			result.Success = false
			result.FailedStep = index
			runErr = sr.Err
			var re *dagerrors.RunError
			if errors.As(sr.Err, &re) {
				result.Errors = append(result.Errors, *re)
			}
		}
	}

	if store != nil {
		if err := store.WriteResult(result); err != nil {
			slog.Warn("failed to store run result", "error", err)
		}
	}

	return result, runErr
}

func executeStep(ctx context.Context, m *manifest.Manifest, index, total int, step manifest.Step, rc *RunContext, mode Mode) *StepResult {
	sr := &StepResult{Index: index, Operation: step.Operation}
	ev := Event{Index: index, Total: total, Step: step}

	fail := func(err *dagerrors.RunError) *StepResult {
		err.AtStep(index)
		sr.Status = StatusFailed
		sr.Message = err.Error()
		sr.Err = err
		ev.Kind, ev.Status, ev.Message, ev.Err = EventOutcome, StatusFailed, sr.Message, err
		rc.emit(ev)
		return sr
	}

	if err := step.Validate(); err != nil {
		var re *dagerrors.RunError
		if !errors.As(err, &re) {
			re = dagerrors.NewManifestError("invalid step", err)
		}
		return fail(re)
	}

	imagePath := m.Resolve(step)

	if mode != ModeExplain && needsIntegrityCheck(step, rc.Policy) {
		filename := manifest.Value(step.Filename)
		sum, err := hasher.Digest(imagePath)
		if err != nil {
			var re *dagerrors.RunError
			if !errors.As(err, &re) {
				re = dagerrors.NewIOError(imagePath, "hashing image", err)
			}
			return fail(re)
		}
		if sum != *step.MD5 {
			return fail(dagerrors.NewIntegrityError(imagePath, filename, *step.MD5, sum))
		}
		ev.Kind, ev.Message = EventIntegrity, fmt.Sprintf("MD5 signature passes for %s", filename)
		rc.emit(ev)
	}

	cmd := command.Build(rc.Runner.Executable(), step, rc.Policy.DisableVerifiedBoot, imagePath)
	sr.Description = cmd.Description
	sr.Command = cmd.String()

	ev.Kind, ev.Message = EventDescription, cmd.Description
	rc.emit(ev)
	ev.Kind, ev.Message, ev.Args = EventCommand, sr.Command, cmd.Args
	rc.emit(ev)
	ev.Args = nil

	switch mode {
	case ModeExplain, ModeDryRun:
		sr.Status = StatusExplain
		if mode == ModeDryRun {
			sr.Status = StatusDryRun
			sr.Message = "Would run: " + sr.Command
		}
		ev.Kind, ev.Status, ev.Message = EventOutcome, sr.Status, sr.Message
		rc.emit(ev)
		return sr
	}

	res := rc.Runner.Run(ctx, cmd.Args[1:]...)
	sr.ExitCode = res.ExitCode
	sr.Output = res.Output
	sr.Duration = res.Duration.Round(time.Millisecond).String()

	if res.Failed() {
		re := dagerrors.NewExternalToolError(fmt.Sprintf("command failed (exit %d): %s", res.ExitCode, sr.Command), res.Output, res.Err)
		return fail(re)
	}
	if strings.Contains(res.Output, failedMarker) {
		re := dagerrors.NewExternalToolError(fmt.Sprintf("fastboot reported FAILED: %s", sr.Command), res.Output, nil)
		re.Hint = "fastboot exited 0 but reported a failure; check the output above"
		return fail(re)
	}

	sr.Status = StatusSuccess
	sr.Message = "OK"
	ev.Kind, ev.Status, ev.Message = EventOutcome, StatusSuccess, sr.Message
	rc.emit(ev)
	return sr
}

// needsIntegrityCheck reports whether the image must be hashed before the
// step runs. An empty MD5 attribute carries nothing to compare against.
func needsIntegrityCheck(step manifest.Step, policy Policy) bool {
	return !policy.SkipIntegrityCheck &&
		manifest.Value(step.MD5) != "" &&
		manifest.Value(step.Filename) != ""
}
