package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps the fastboot output of a run so a failed flash can be
// diagnosed after the console has scrolled away.
type Store struct {
	RunID   string
	BaseDir string // <root>/runs/<run_id>
}

// New creates a store for a given run ID under root.
func New(runID, root string) (*Store, error) {
	base := filepath.Join(root, "runs", runID)
	if err := os.MkdirAll(filepath.Join(base, "steps"), 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	return &Store{RunID: runID, BaseDir: base}, nil
}

// StepLogPath returns where the output of step index is written.
func (s *Store) StepLogPath(index int, operation string) string {
	name := fmt.Sprintf("%02d-%s.log", index, sanitize(operation))
	return filepath.Join(s.BaseDir, "steps", name)
}

// WriteStepOutput writes the combined fastboot output of one step.
func (s *Store) WriteStepOutput(index int, operation, output string) error {
	return os.WriteFile(s.StepLogPath(index, operation), []byte(output), 0o644)
}

// WriteResult writes the final result JSON.
func (s *Store) WriteResult(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.BaseDir, "result.json"), data, 0o644)
}

func sanitize(operation string) string {
	if operation == "" {
		return "step"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, operation)
}
