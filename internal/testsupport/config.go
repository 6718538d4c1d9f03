package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"vtripper/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.GameDir = filepath.Join(base, "VTOL VR")
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.SPluginsDir = filepath.Join(base, "SPlugins")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGameInstall seeds the game directory with the managed assemblies the
// reorganizer copies.
func WithGameInstall() ConfigOption {
	return func(b *configBuilder) {
		SeedGameInstall(b.t, b.cfg.Paths.GameDir)
	}
}

// WithSPlugins seeds the auxiliary scripts folder.
func WithSPlugins(files map[string]string) ConfigOption {
	return func(b *configBuilder) {
		if err := os.MkdirAll(b.cfg.Paths.SPluginsDir, 0o755); err != nil {
			b.t.Fatalf("mkdir splugins: %v", err)
		}
		WriteTree(b.t, b.cfg.Paths.SPluginsDir, files)
	}
}

// WithDecompilerStub writes an executable shell script that exits with code
// and points the config at it.
func WithDecompilerStub(code int) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "AssetRipper.CLI")
		script := []byte("#!/bin/sh\necho \"stub export $1\"\nexit " + strconv.Itoa(code) + "\n")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write stub decompiler: %v", err)
		}
		b.cfg.Paths.DecompilerBinary = target
	}
}
