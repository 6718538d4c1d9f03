// Package importer copies the hand-written plugin scripts into the exported
// project.
package importer

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"vtripper/internal/fileutil"
	"vtripper/internal/logging"
	"vtripper/internal/services"
)

const stageName = "copy-dlls"

// DestSubdir is where imported files land, relative to the output directory.
const DestSubdir = "Assets/Scripts/SPlugins"

// Result lists what Import copied and skipped.
type Result struct {
	Copied  []string
	Skipped []string
}

// Import creates destDir and copies every regular file directly inside srcDir
// into it. destDir must not exist yet. Subdirectories are skipped.
func Import(ctx context.Context, srcDir, destDir string, logger *slog.Logger) (Result, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "importer"))

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrNotFound, stageName, "list plugin sources", srcDir, err)
		}
		return Result{}, services.Wrap(services.ErrFilesystem, stageName, "list plugin sources", srcDir, err)
	}
	if err := os.Mkdir(destDir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Result{}, services.Wrap(services.ErrValidation, stageName, "create plugin folder",
				destDir+" already exists; rerun from pre-clean", err)
		}
		return Result{}, services.Wrap(services.ErrFilesystem, stageName, "create plugin folder", destDir, err)
	}

	var result Result
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		name := entry.Name()
		if entry.IsDir() {
			logging.WarnWithContext(logger, "skipping plugin subdirectory", "import_subdir_skipped",
				logging.String("name", name),
				logging.String(logging.FieldImpact, "nested files are not imported"),
			)
			result.Skipped = append(result.Skipped, name)
			continue
		}
		logger.Info("copying plugin file", logging.String("file", name))
		if err := fileutil.CopyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			return result, services.Wrap(services.ErrFilesystem, stageName, "copy plugin file", name, err)
		}
		result.Copied = append(result.Copied, name)
	}
	logger.Info("imported plugin files",
		logging.Int("copied", len(result.Copied)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}
