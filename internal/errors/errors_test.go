package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestRunErrorMessage(t *testing.T) {
	err := NewManifestError("manifest has no <steps> container", nil)

	if got := err.Error(); got != "[MANIFEST_ERROR] manifest has no <steps> container" {
		t.Errorf("unexpected message: %s", got)
	}

	err.AtStep(4)
	if got := err.Error(); got != "[MANIFEST_ERROR] step 4: manifest has no <steps> container" {
		t.Errorf("unexpected message with step: %s", got)
	}
}

func TestRunErrorIncludesCause(t *testing.T) {
	err := NewIOError("/fw/boot.img", "hashing image", fs.ErrNotExist)

	errMsg := err.Error()
	if !strings.Contains(errMsg, "hashing image") {
		t.Errorf("error message should contain message, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, fs.ErrNotExist.Error()) {
		t.Errorf("error message should contain cause, got: %s", errMsg)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("expected Unwrap to expose the cause")
	}
}

func TestIntegrityError(t *testing.T) {
	err := NewIntegrityError("/fw/boot.img", "boot.img", "aaaa", "bbbb")

	errMsg := err.Error()
	if !strings.Contains(errMsg, "MD5 verification failed for boot.img") {
		t.Errorf("error message should name the file, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "expected aaaa, got bbbb") {
		t.Errorf("error message should contain both digests, got: %s", errMsg)
	}
	if err.Hint == "" {
		t.Error("expected a hint")
	}
}

func TestExternalToolErrorKeepsOutput(t *testing.T) {
	err := NewExternalToolError("command failed (exit 1)", "FAILED (remote: 'unknown command')", nil)
	if err.Output != "FAILED (remote: 'unknown command')" {
		t.Errorf("unexpected output: %q", err.Output)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"manifest", NewManifestError("x", nil), ManifestError},
		{"io", NewIOError("p", "x", nil), IOError},
		{"integrity", NewIntegrityError("p", "f", "a", "b"), IntegrityError},
		{"external", NewExternalToolError("x", "", nil), ExternalToolError},
		{"wrapped", fmt.Errorf("run: %w", NewIOError("p", "x", nil)), IOError},
		{"plain", stderrors.New("boom"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
