package importer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"vtripper/internal/importer"
	"vtripper/internal/logging"
	"vtripper/internal/services"
	"vtripper/internal/testsupport"
)

func TestImportCopiesTopLevelFiles(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "SPlugins")
	dest := filepath.Join(base, "project", "SPlugins")
	testsupport.WriteTree(t, src, map[string]string{
		"Loader.cs":       "class Loader {}",
		"Helper.dll":      "binary",
		"nested/Inner.cs": "class Inner {}",
	})
	testsupport.WriteTree(t, base, map[string]string{"project/": ""})

	result, err := importer.Import(context.Background(), src, dest, logging.NewNop())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	slices.Sort(result.Copied)
	if !slices.Equal(result.Copied, []string{"Helper.dll", "Loader.cs"}) {
		t.Fatalf("copied = %v", result.Copied)
	}
	if !slices.Equal(result.Skipped, []string{"nested"}) {
		t.Fatalf("skipped = %v", result.Skipped)
	}
	data, err := os.ReadFile(filepath.Join(dest, "Loader.cs"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(data) != "class Loader {}" {
		t.Fatalf("copied contents = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dest, "nested")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("subdirectory should not be imported, stat err = %v", err)
	}
}

func TestImportEmptySourceCreatesEmptyFolder(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "SPlugins")
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	dest := filepath.Join(base, "dest")

	result, err := importer.Import(context.Background(), src, dest, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(result.Copied) != 0 {
		t.Fatalf("expected no copies, got %v", result.Copied)
	}
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected destination folder, stat err = %v", err)
	}
}

func TestImportFailsWhenDestinationExists(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "SPlugins")
	dest := filepath.Join(base, "dest")
	testsupport.WriteTree(t, base, map[string]string{
		"SPlugins/a.cs": "a",
		"dest/":         "",
	})

	_, err := importer.Import(context.Background(), src, dest, logging.NewNop())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportFailsWhenSourceMissing(t *testing.T) {
	base := t.TempDir()
	dest := filepath.Join(base, "dest")

	_, err := importer.Import(context.Background(), filepath.Join(base, "missing"), dest, logging.NewNop())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, statErr := os.Stat(dest); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("destination should not be created when the source is missing")
	}
}

func TestImportFailsWhenParentMissing(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "SPlugins")
	testsupport.WriteTree(t, src, map[string]string{"a.cs": "a"})

	_, err := importer.Import(context.Background(), src, filepath.Join(base, "no", "such", "dest"), logging.NewNop())
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}
