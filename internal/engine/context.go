package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/irixaligned/swat/internal/fastboot"
)

// Policy is fixed for a whole run.
type Policy struct {
	SkipIntegrityCheck  bool `json:"skip_integrity_check"`
	DisableVerifiedBoot bool `json:"disable_verified_boot"`
}

// Runner is the fastboot boundary: a located executable that can be invoked
// with arguments.
type Runner interface {
	Executable() string
	Run(ctx context.Context, args ...string) *fastboot.Result
}

// RunContext holds state for one manifest execution.
type RunContext struct {
	RunID       string
	Policy      Policy
	Runner      Runner
	Sink        Sink   // optional
	ArtifactDir string // step output and result.json are kept here in run mode; empty disables
}

// NewRunContext creates a new execution context with a fresh run id.
func NewRunContext(runner Runner, policy Policy, sink Sink) *RunContext {
	return &RunContext{
		RunID:  uuid.New().String(),
		Policy: policy,
		Runner: runner,
		Sink:   sink,
	}
}

func (rc *RunContext) emit(ev Event) {
	if rc.Sink != nil {
		rc.Sink(ev)
	}
}
