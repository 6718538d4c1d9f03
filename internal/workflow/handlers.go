package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"vtripper/internal/fileutil"
	"vtripper/internal/importer"
	"vtripper/internal/logging"
	"vtripper/internal/manifest"
	"vtripper/internal/organizer"
	"vtripper/internal/scriptfix"
	"vtripper/internal/services"
	"vtripper/internal/stage"
)

// handlerFor dispatches a stage to its handler.
func (m *Manager) handlerFor(s Stage) (stage.Handler, error) {
	if h, ok := m.overrides[s]; ok {
		return h, nil
	}
	name := s.String()
	switch s {
	case PreClean:
		return stage.Func{Name: name, Run: m.preClean, Check: m.checkPreClean}, nil
	case RipProject:
		return stage.Func{Name: name, Run: m.ripProject, Check: m.checkRipProject}, nil
	case FormatProject:
		return stage.Func{Name: name, Run: m.formatProject, Check: m.checkFormatProject}, nil
	case EditManifest:
		return stage.Func{Name: name, Run: m.editManifest}, nil
	case CopyDLLs:
		return stage.Func{Name: name, Run: m.copyDLLs, Check: m.checkCopyDLLs}, nil
	case FixScripts:
		return stage.Func{Name: name, Run: m.fixScripts}, nil
	default:
		return nil, fmt.Errorf("no handler for %s", s)
	}
}

func (m *Manager) outputPath(rel string) string {
	return filepath.Join(m.cfg.Paths.OutputDir, filepath.FromSlash(rel))
}

func (m *Manager) preClean(ctx context.Context) error {
	logger := logging.WithContext(ctx, m.logger)
	out := m.cfg.Paths.OutputDir
	logger.Info("resetting output directory", logging.String("path", out))
	if err := fileutil.ResetDir(out); err != nil {
		return services.Wrap(services.ErrFilesystem, PreClean.String(), "reset output directory", out, err)
	}
	return nil
}

func (m *Manager) ripProject(ctx context.Context) error {
	logger := logging.WithContext(ctx, m.logger)
	exporter, err := m.newExporter(logging.NewComponentLogger(logger, "assetripper"))
	if err != nil {
		return services.Wrap(services.ErrConfiguration, RipProject.String(), "configure decompiler", "", err)
	}
	result, err := exporter.Export(ctx, m.cfg.Paths.GameDir, m.cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("decompiler finished",
		logging.Int("output_lines", result.Lines),
		logging.Int("exit_code", result.ExitCode),
		logging.Duration("export_duration", result.Duration),
	)
	return nil
}

func (m *Manager) formatProject(ctx context.Context) error {
	org := organizer.New(m.cfg.Paths.OutputDir, m.cfg.ManagedDir(), organizer.DefaultLayout(), m.logger)
	return org.Format(ctx)
}

func (m *Manager) editManifest(ctx context.Context) error {
	logger := logging.WithContext(ctx, m.logger)
	path := m.outputPath("Packages/manifest.json")
	pins := manifest.DefaultPins()

	result, err := manifest.Patch(path, pins)
	if err != nil {
		return err
	}
	if err := manifest.Verify(path, pins); err != nil {
		return err
	}
	logger.Info("manifest dependencies pinned",
		logging.String("path", path),
		logging.String("updated", strings.Join(result.Updated, ",")),
		logging.Bool("written", result.Written),
	)
	return nil
}

func (m *Manager) copyDLLs(ctx context.Context) error {
	_, err := importer.Import(ctx, m.cfg.Paths.SPluginsDir, m.outputPath(importer.DestSubdir), m.logger)
	return err
}

func (m *Manager) fixScripts(ctx context.Context) error {
	_, err := scriptfix.PatchTree(ctx, m.outputPath(scriptfix.TargetSubdir), scriptfix.SourceExt,
		scriptfix.DefaultTransforms(), m.logger)
	return err
}
