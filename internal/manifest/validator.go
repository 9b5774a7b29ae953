package manifest

import (
	"fmt"

	dagerrors "github.com/irixaligned/swat/internal/errors"
)

// Validate checks the operation-specific attributes of a single step.
func (s Step) Validate() error {
	if s.Operation == "" {
		return &dagerrors.RunError{
			Type:    dagerrors.ManifestError,
			Message: "step has no operation",
		}
	}

	switch s.Operation {
	case OpFlash, OpErase:
		if Value(s.Partition) == "" {
			return &dagerrors.RunError{
				Type:    dagerrors.ManifestError,
				Message: fmt.Sprintf("%s step requires a partition", s.Operation),
			}
		}
	}

	if s.Operation == OpFlash && Value(s.Filename) == "" {
		return &dagerrors.RunError{
			Type:    dagerrors.ManifestError,
			Message: fmt.Sprintf("flash step for partition %q requires a filename", Value(s.Partition)),
		}
	}
	return nil
}

// Validate checks every step and reports the first invalid one. Running a
// manifest does not require this; the executor validates each step as it is
// reached.
func (m *Manifest) Validate() error {
	for i, s := range m.Steps {
		if err := s.Validate(); err != nil {
			if re, ok := err.(*dagerrors.RunError); ok {
				return re.AtStep(i + 1)
			}
			return err
		}
	}
	return nil
}
