// Package config resolves swat settings from a YAML file, a .env file and
// SWAT_* environment variables. Command-line flags are applied on top by cmd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read from the working directory when --config is not given.
	DefaultFile = "swat.yaml"

	// DefaultArtifactDir holds per-run step logs and result.json.
	DefaultArtifactDir = ".swat"
)

// Environment variable names.
const (
	EnvFastbootPath = "SWAT_FASTBOOT_PATH"
	EnvLogLevel     = "SWAT_LOG_LEVEL"
	EnvLoggingType  = "SWAT_LOGGING_TYPE"
	EnvArtifactDir  = "SWAT_ARTIFACT_DIR"
	EnvNoArtifacts  = "SWAT_NO_ARTIFACTS"
)

// Config models swat.yaml.
type Config struct {
	FastbootPath string `yaml:"fastboot_path,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	LoggingType  string `yaml:"logging_type,omitempty"`
	ArtifactDir  string `yaml:"artifact_dir,omitempty"`
	Artifacts    *bool  `yaml:"artifacts,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	enabled := true
	return Config{
		LogLevel:    "warn",
		LoggingType: "tint",
		ArtifactDir: DefaultArtifactDir,
		Artifacts:   &enabled,
	}
}

// ArtifactsEnabled reports whether run artifacts should be written.
func (c Config) ArtifactsEnabled() bool {
	return c.Artifacts == nil || *c.Artifacts
}

// Load builds the effective configuration: defaults, then the YAML file at
// path, then the environment. A missing file is only an error when explicit
// is set, i.e. the user named it with --config.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		slog.Debug("no config file found", "path", path)
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.merge(fileCfg)
		slog.Debug("using config file", "path", path)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotenv loads a .env file into the process environment. A missing file
// is not an error. Variables already set win over the file.
func LoadDotenv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no .env file found")
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	slog.Debug("using .env file")
	return nil
}

func (c *Config) merge(o Config) {
	if o.FastbootPath != "" {
		c.FastbootPath = o.FastbootPath
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LoggingType != "" {
		c.LoggingType = o.LoggingType
	}
	if o.ArtifactDir != "" {
		c.ArtifactDir = o.ArtifactDir
	}
	if o.Artifacts != nil {
		c.Artifacts = o.Artifacts
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFastbootPath); ok && v != "" {
		c.FastbootPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLoggingType); ok && v != "" {
		c.LoggingType = v
	}
	if v, ok := lookup(EnvArtifactDir); ok && v != "" {
		c.ArtifactDir = v
	}
	if v, ok := lookup(EnvNoArtifacts); ok && strings.TrimSpace(v) != "" {
		off, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvNoArtifacts, v, err)
		}
		enabled := !off
		c.Artifacts = &enabled
	}
	return nil
}
