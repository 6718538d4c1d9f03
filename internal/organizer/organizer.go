package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vtripper/internal/fileutil"
	"vtripper/internal/logging"
	"vtripper/internal/services"
)

const stageName = "format-project"

// Organizer reshapes the decompiler output into a Unity project folder.
type Organizer struct {
	outputDir  string
	managedDir string
	layout     Layout
	logger     *slog.Logger
}

// New constructs an organizer for outputDir that copies libraries from managedDir.
func New(outputDir, managedDir string, layout Layout, logger *slog.Logger) *Organizer {
	return &Organizer{
		outputDir:  outputDir,
		managedDir: managedDir,
		layout:     layout,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// Format applies every reorganization step in order. Steps that address paths
// relative to the output root run after the flatten step. There is no rollback:
// a failure leaves the tree as the previous steps shaped it.
func (o *Organizer) Format(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"remove auxiliary files", o.RemoveAuxiliary},
		{"flatten exported project", o.FlattenExported},
		{"prune scenes", o.PruneScenes},
		{"prune maps", o.PruneMaps},
		{"prune plugins", o.PrunePlugins},
		{"copy managed libraries", o.CopyManagedLibraries},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAuxiliary deletes the auxiliary folder at the root and inside the
// exported project so it cannot resurface after flattening.
func (o *Organizer) RemoveAuxiliary(ctx context.Context) error {
	logger := logging.WithContext(ctx, o.logger)
	for _, dir := range []string{
		o.path(o.layout.AuxiliaryDir),
		o.path(o.layout.ExportedDir, o.layout.AuxiliaryDir),
	} {
		exists, err := fileutil.Exists(dir)
		if err != nil {
			return services.Wrap(services.ErrFilesystem, stageName, "inspect auxiliary files", dir, err)
		}
		if !exists {
			continue
		}
		logger.Info("deleting auxiliary files", logging.String("path", dir))
		if err := fileutil.RemoveTree(dir); err != nil {
			return services.Wrap(services.ErrFilesystem, stageName, "delete auxiliary files", dir, err)
		}
	}
	return nil
}

// FlattenExported moves every direct child of the exported project folder into
// the output root, then removes the emptied folder.
func (o *Organizer) FlattenExported(ctx context.Context) error {
	logger := logging.WithContext(ctx, o.logger)
	exported := o.path(o.layout.ExportedDir)
	entries, err := os.ReadDir(exported)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrValidation, stageName, "flatten exported project",
				"decompiler output has no "+o.layout.ExportedDir+" folder", err)
		}
		return services.Wrap(services.ErrFilesystem, stageName, "flatten exported project", exported, err)
	}
	for _, entry := range entries {
		src := filepath.Join(exported, entry.Name())
		dst := o.path(entry.Name())
		if err := fileutil.MoveEntry(src, dst); err != nil {
			return services.Wrap(services.ErrFilesystem, stageName, "flatten exported project", entry.Name(), err)
		}
	}
	if err := os.Remove(exported); err != nil {
		return services.Wrap(services.ErrFilesystem, stageName, "remove exported project folder", exported, err)
	}
	logger.Info("flattened exported project", logging.Int("entries", len(entries)))
	return nil
}

// PruneScenes deletes every scene folder except the one being kept. Loose
// files in the scenes folder are left alone.
func (o *Organizer) PruneScenes(ctx context.Context) error {
	logger := logging.WithContext(ctx, o.logger)
	scenes := o.path(o.layout.ScenesDir)
	entries, err := os.ReadDir(scenes)
	if err != nil {
		return o.missingLayout("prune scenes", scenes, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == o.layout.KeepScene {
			continue
		}
		path := filepath.Join(scenes, entry.Name())
		logger.Info("deleting scene folder", logging.String("path", path))
		if err := fileutil.RemoveTree(path); err != nil {
			return services.Wrap(services.ErrFilesystem, stageName, "delete scene folder", path, err)
		}
	}
	return nil
}

// PruneMaps deletes the map folders that are excluded from the project.
func (o *Organizer) PruneMaps(ctx context.Context) error {
	logger := logging.WithContext(ctx, o.logger)
	for _, name := range o.layout.PrunedMaps {
		path := o.path(o.layout.ScenesDir, o.layout.KeepScene, name)
		logger.Info("deleting map folder", logging.String("map", name))
		if err := fileutil.RemoveTree(path); err != nil {
			return services.Wrap(services.ErrFilesystem, stageName, "delete map folder", path, err)
		}
	}
	return nil
}

// PrunePlugins deletes prefixed plugin files, the listed plugin folders, and
// the listed plugin files. The listed files must exist.
func (o *Organizer) PrunePlugins(ctx context.Context) error {
	logger := logging.WithContext(ctx, o.logger)
	plugins := o.path(o.layout.PluginsDir)
	entries, err := os.ReadDir(plugins)
	if err != nil {
		return o.missingLayout("prune plugins", plugins, err)
	}
	if prefix := o.layout.PluginPrefix; prefix != "" {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
				continue
			}
			path := filepath.Join(plugins, entry.Name())
			logger.Info("deleting unity library", logging.String("path", path))
			if err := os.Remove(path); err != nil {
				return services.Wrap(services.ErrFilesystem, stageName, "delete unity library", path, err)
			}
		}
	}
	for _, name := range o.layout.PluginDirs {
		path := filepath.Join(plugins, name)
		if err := fileutil.RemoveTree(path); err != nil {
			return services.Wrap(services.ErrFilesystem, stageName, "delete plugin folder", path, err)
		}
	}
	for _, name := range o.layout.PluginFiles {
		path := filepath.Join(plugins, name)
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return services.Wrap(services.ErrValidation, stageName, "delete plugin file",
					name+" missing from decompiler output", err)
			}
			return services.Wrap(services.ErrFilesystem, stageName, "delete plugin file", path, err)
		}
	}
	return nil
}

// CopyManagedLibraries copies the listed assemblies from the game install into
// the plugins folder, overwriting existing copies.
func (o *Organizer) CopyManagedLibraries(ctx context.Context) error {
	logger := logging.WithContext(ctx, o.logger)
	plugins := o.path(o.layout.PluginsDir)
	for _, name := range o.layout.ManagedLibraries {
		src := filepath.Join(o.managedDir, name)
		dst := filepath.Join(plugins, name)
		if err := fileutil.CopyFileVerified(src, dst); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return services.Wrap(services.ErrNotFound, stageName, "copy managed library",
					fmt.Sprintf("%s not found in %s", name, o.managedDir), err)
			}
			return services.Wrap(services.ErrFilesystem, stageName, "copy managed library", name, err)
		}
		logger.Debug("copied managed library", logging.String("library", name))
	}
	logger.Info("copied managed libraries", logging.Int("count", len(o.layout.ManagedLibraries)))
	return nil
}

func (o *Organizer) missingLayout(operation, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrValidation, stageName, operation, path+" missing from exported project", err)
	}
	return services.Wrap(services.ErrFilesystem, stageName, operation, path, err)
}

func (o *Organizer) path(parts ...string) string {
	elems := make([]string, 0, len(parts)+1)
	elems = append(elems, o.outputDir)
	for _, part := range parts {
		elems = append(elems, filepath.FromSlash(part))
	}
	return filepath.Join(elems...)
}
