package fastboot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	dagerrors "github.com/irixaligned/swat/internal/errors"
)

const binaryName = "fastboot"

// Locate finds the fastboot executable. An explicit override must point at an
// existing file. Otherwise a fastboot binary in the working directory wins,
// then one on PATH that answers --version.
func Locate(ctx context.Context, override string) (string, error) {
	return locate(ctx, override, true)
}

// Lookup follows the same search order as Locate without running anything,
// so a binary on PATH is accepted unprobed.
func Lookup(override string) (string, error) {
	return locate(context.Background(), override, false)
}

func locate(ctx context.Context, override string, probe bool) (string, error) {
	if override != "" {
		if !isFile(override) {
			return "", &dagerrors.RunError{
				Type:    dagerrors.ExternalToolError,
				Path:    override,
				Message: fmt.Sprintf("specified fastboot binary not found at %s", override),
			}
		}
		slog.Debug("using fastboot override", "path", override)
		return override, nil
	}

	local := binaryName
	if runtime.GOOS == "windows" {
		local += ".exe"
	}
	if isFile(local) {
		path := "." + string(filepath.Separator) + local
		slog.Debug("using fastboot from working directory", "path", path)
		return path, nil
	}

	path, err := exec.LookPath(binaryName)
	if err == nil {
		if !probe {
			return path, nil
		}
		if res := New(path).Run(ctx, "--version"); !res.Failed() {
			slog.Debug("using fastboot from PATH", "path", path)
			return path, nil
		}
		slog.Warn("fastboot on PATH did not answer --version", "path", path)
	}

	return "", &dagerrors.RunError{
		Type:    dagerrors.ExternalToolError,
		Message: "fastboot binary not found",
		Hint:    "Specify the path using --fastboot-path",
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
