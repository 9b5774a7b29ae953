package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	dagerrors "github.com/irixaligned/swat/internal/errors"
	"github.com/irixaligned/swat/internal/fastboot"
	"github.com/irixaligned/swat/internal/manifest"
)

const flashfilePattern = "**/flashfile.xml"

// resolveManifest accepts a manifest file or an unpacked firmware directory.
// For a directory the shallowest flashfile.xml wins.
func resolveManifest(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", dagerrors.NewManifestError(fmt.Sprintf("XML file '%s' not found", arg), err)
	}
	if !info.IsDir() {
		return arg, nil
	}

	matches, err := doublestar.Glob(os.DirFS(arg), flashfilePattern)
	if err != nil {
		return "", dagerrors.NewManifestError("searching "+arg, err)
	}
	if len(matches) == 0 {
		re := dagerrors.NewManifestError(fmt.Sprintf("no flashfile.xml found under %s", arg), nil)
		re.Hint = "Pass the manifest path directly"
		return "", re
	}
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := strings.Count(matches[i], "/"), strings.Count(matches[j], "/")
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	if len(matches) > 1 {
		slog.Info("multiple manifests found", "dir", arg, "using", matches[0], "count", len(matches))
	}
	return filepath.Join(arg, filepath.FromSlash(matches[0])), nil
}

func loadManifest(arg string) (*manifest.Manifest, error) {
	path, err := resolveManifest(arg)
	if err != nil {
		return nil, err
	}
	return manifest.LoadFile(path)
}

// locateFastboot applies --fastboot-path over the configured path.
func locateFastboot(ctx context.Context, flagPath string) (*fastboot.Tool, error) {
	override := flagPath
	if override == "" {
		override = settings.FastbootPath
	}
	path, err := fastboot.Locate(ctx, override)
	if err != nil {
		return nil, err
	}
	slog.Info("fastboot located", "path", path)
	return fastboot.New(path), nil
}

// previewTool is used where fastboot is only named, never run, so an
// explicit path is taken as given and PATH is searched without a probe.
func previewTool(flagPath string) *fastboot.Tool {
	if flagPath != "" {
		return fastboot.New(flagPath)
	}
	if settings.FastbootPath != "" {
		return fastboot.New(settings.FastbootPath)
	}
	path, err := fastboot.Lookup("")
	if err != nil {
		slog.Warn("fastboot not found; commands show the bare name", "error", err)
		return fastboot.New("fastboot")
	}
	return fastboot.New(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
