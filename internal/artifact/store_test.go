package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesRunDir(t *testing.T) {
	dir := t.TempDir()
	store, err := New("run-123", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.BaseDir != filepath.Join(dir, "runs", "run-123") {
		t.Errorf("unexpected base dir %q", store.BaseDir)
	}
	stepsDir := filepath.Join(store.BaseDir, "steps")
	info, err := os.Stat(stepsDir)
	if err != nil {
		t.Fatalf("steps dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected steps to be a directory")
	}
}

func TestWriteStepOutput(t *testing.T) {
	dir := t.TempDir()
	store, _ := New("run-456", dir)

	err := store.WriteStepOutput(3, "flash", "Sending 'boot_a'\nOKAY\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.BaseDir, "steps", "03-flash.log"))
	if err != nil {
		t.Fatalf("step log not written: %v", err)
	}
	if string(data) != "Sending 'boot_a'\nOKAY\n" {
		t.Errorf("unexpected log content %q", string(data))
	}
}

func TestStepLogPathSanitizesOperation(t *testing.T) {
	store := &Store{BaseDir: "/x"}
	got := filepath.Base(store.StepLogPath(12, "oem/../evil op"))
	if got != "12-oem_.._evil_op.log" {
		t.Errorf("unexpected log name %q", got)
	}
	if got := filepath.Base(store.StepLogPath(1, "")); got != "01-step.log" {
		t.Errorf("unexpected log name for empty operation %q", got)
	}
}

func TestWriteResult(t *testing.T) {
	dir := t.TempDir()
	store, _ := New("run-789", dir)

	result := map[string]string{"status": "ok"}
	err := store.WriteResult(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(store.BaseDir, "result.json"))
	var obj map[string]string
	json.Unmarshal(data, &obj)
	if obj["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", obj["status"])
	}
}
