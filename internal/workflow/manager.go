package workflow

import (
	"context"
	"errors"
	"log/slog"

	"vtripper/internal/config"
	"vtripper/internal/logging"
	"vtripper/internal/services/assetripper"
	"vtripper/internal/stage"
)

// Exporter runs the decompiler against the game install.
type Exporter interface {
	Export(ctx context.Context, gameDir, outputDir string) (assetripper.Result, error)
}

// Manager runs pipeline stages against the configured paths.
type Manager struct {
	cfg         *config.Config
	logger      *slog.Logger
	newExporter func(*slog.Logger) (Exporter, error)
	overrides   map[Stage]stage.Handler
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithExporter replaces the AssetRipper client used by the rip-project stage.
func WithExporter(exporter Exporter) ManagerOption {
	return func(m *Manager) {
		if exporter != nil {
			m.newExporter = func(*slog.Logger) (Exporter, error) { return exporter, nil }
		}
	}
}

// WithStageHandler replaces the built-in handler for one stage.
func WithStageHandler(s Stage, handler stage.Handler) ManagerOption {
	return func(m *Manager) {
		if handler != nil {
			m.overrides[s] = handler
		}
	}
}

// NewManager constructs a workflow manager for cfg.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...ManagerOption) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("workflow manager requires a config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		cfg:       cfg,
		logger:    logger,
		overrides: make(map[Stage]stage.Handler),
	}
	m.newExporter = func(logger *slog.Logger) (Exporter, error) {
		return assetripper.New(cfg.Paths.DecompilerBinary, cfg.AssetRipper.TimeoutSeconds,
			assetripper.WithLogger(logger))
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}
