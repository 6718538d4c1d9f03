package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vtripper/internal/config"
	"vtripper/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("ASSETRIPPER_BIN", "")
	t.Setenv("VTOLVR_DIR", "")

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(homeDir, ".config", "vtripper", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndecompiler_binary = %q\ngame_dir = %q\noutput_dir = %q\nsplugins_dir = %q\nlog_dir = %q\n\n"+
			"[pipeline]\nstart_stage = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.DecompilerBinary,
		cfg.Paths.GameDir,
		cfg.Paths.OutputDir,
		cfg.Paths.SPluginsDir,
		cfg.Paths.LogDir,
		cfg.Pipeline.StartStage,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeExportingDecompiler installs a decompiler stub that writes a minimal
// export into its output argument.
func writeExportingDecompiler(t *testing.T, dir string) string {
	t.Helper()
	ui := `"$out/ExportedProject/Assets/Scripts/Assembly-CSharp/UnityEngine/UI"`
	plugins := `"$out/ExportedProject/Assets/Plugins"`
	script := strings.Join([]string{
		"#!/bin/sh",
		`out="$3"`,
		`echo "Exporting $2"`,
		`echo ""`,
		`mkdir -p "$out/AuxiliaryFiles" "$out/ExportedProject/Assets/Scenes/Maps/Akutan" "$out/ExportedProject/Assets/Scenes/Menu" "$out/ExportedProject/Packages" ` + plugins + "/Assembly-CSharp-firstpass " + ui,
		"touch " + plugins + "/SteamVR.dll " + plugins + "/SteamVR_Actions.dll " + plugins + "/Unity.Burst.dll",
		`printf '{"dependencies":{"com.unity.ugui":"1.0.0"}}' > "$out/ExportedProject/Packages/manifest.json"`,
		`printf '[SpecialName]\nTransform ICanvasElement.get_transform()\n{\n\treturn base.transform;\n}\nclass Keep {}\n' > ` + ui + `/Graphic.cs`,
		"exit 0",
		"",
	}, "\n")
	path := filepath.Join(dir, "AssetRipper.CLI")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write decompiler stub: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
