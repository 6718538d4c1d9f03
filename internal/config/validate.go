package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if c.AssetRipper.TimeoutSeconds < 0 {
		return errors.New("assetripper.timeout_seconds must be zero or positive")
	}
	if c.Pipeline.StartStage == "" {
		return errors.New("pipeline.start_stage must be set")
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DecompilerBinary == "" {
		return errors.New("paths.decompiler_binary must be set (or export ASSETRIPPER_BIN)")
	}
	if c.Paths.GameDir == "" {
		return errors.New("paths.game_dir must be set (or export VTOLVR_DIR)")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	// The output directory is wiped at the start of every run.
	if c.Paths.OutputDir == filepath.Dir(c.Paths.OutputDir) {
		return fmt.Errorf("paths.output_dir %q must not be a filesystem root", c.Paths.OutputDir)
	}
	if c.Paths.SPluginsDir == "" {
		return errors.New("paths.splugins_dir must be set")
	}
	for _, other := range []struct{ key, path string }{
		{"paths.game_dir", c.Paths.GameDir},
		{"paths.splugins_dir", c.Paths.SPluginsDir},
		{"paths.log_dir", c.Paths.LogDir},
	} {
		if within(c.Paths.OutputDir, other.path) {
			return fmt.Errorf("paths.output_dir %q must not contain %s %q", c.Paths.OutputDir, other.key, other.path)
		}
	}
	return nil
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	if path == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
