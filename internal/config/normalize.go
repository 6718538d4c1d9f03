package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Pipeline.StartStage = strings.ToLower(strings.TrimSpace(c.Pipeline.StartStage))
	if c.Pipeline.StartStage == "" {
		c.Pipeline.StartStage = defaultStartStage
	}
	c.Pipeline.StopStage = strings.ToLower(strings.TrimSpace(c.Pipeline.StopStage))
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("ASSETRIPPER_BIN"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DecompilerBinary = value
	}
	c.Paths.DecompilerBinary = strings.TrimSpace(c.Paths.DecompilerBinary)
	// Bare command names are resolved through PATH at run time.
	if strings.ContainsAny(c.Paths.DecompilerBinary, `/\`) || strings.HasPrefix(c.Paths.DecompilerBinary, "~") {
		expanded, err := ExpandPath(c.Paths.DecompilerBinary)
		if err != nil {
			return fmt.Errorf("paths.decompiler_binary: %w", err)
		}
		c.Paths.DecompilerBinary = expanded
	}

	var err error
	if value, ok := os.LookupEnv("VTOLVR_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.GameDir = value
	}
	if c.Paths.GameDir, err = ExpandPath(strings.TrimSpace(c.Paths.GameDir)); err != nil {
		return fmt.Errorf("paths.game_dir: %w", err)
	}
	if c.Paths.OutputDir, err = ExpandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.SPluginsDir, err = ExpandPath(strings.TrimSpace(c.Paths.SPluginsDir)); err != nil {
		return fmt.Errorf("paths.splugins_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
