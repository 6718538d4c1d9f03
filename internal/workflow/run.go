package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vtripper/internal/config"
	"vtripper/internal/logging"
	"vtripper/internal/services"
)

// RunOptions selects the window of stages a run executes.
type RunOptions struct {
	From Stage
	To   Stage
	// DryRun logs the planned stages without executing them.
	DryRun bool
	// SkipPreflight starts the first stage without checking stage inputs.
	SkipPreflight bool
}

// DefaultRunOptions runs every stage.
func DefaultRunOptions() RunOptions {
	return RunOptions{From: First(), To: Last()}
}

// OptionsFromConfig builds run options from the pipeline section of cfg.
func OptionsFromConfig(cfg *config.Config) (RunOptions, error) {
	opts := DefaultRunOptions()
	if cfg == nil {
		return opts, nil
	}
	if name := strings.TrimSpace(cfg.Pipeline.StartStage); name != "" {
		from, err := ParseStage(name)
		if err != nil {
			return opts, fmt.Errorf("pipeline.start_stage: %w", err)
		}
		opts.From = from
	}
	if name := strings.TrimSpace(cfg.Pipeline.StopStage); name != "" {
		to, err := ParseStage(name)
		if err != nil {
			return opts, fmt.Errorf("pipeline.stop_stage: %w", err)
		}
		opts.To = to
	}
	return opts, nil
}

// Plan lists the stages from..to inclusive in execution order.
func Plan(from, to Stage) ([]Stage, error) {
	if !from.valid() || !to.valid() {
		return nil, services.Wrap(services.ErrConfiguration, "", "plan run",
			fmt.Sprintf("invalid stage window %s..%s", from, to), nil)
	}
	if to < from {
		return nil, services.Wrap(services.ErrConfiguration, "", "plan run",
			fmt.Sprintf("stop stage %s comes before start stage %s", to, from), nil)
	}
	plan := []Stage{from}
	for current := from; current != to; {
		next, ok := current.Next()
		if !ok {
			break
		}
		plan = append(plan, next)
		current = next
	}
	return plan, nil
}

// Summary reports what a run did.
type Summary struct {
	RunID     string
	Planned   []Stage
	Completed []Stage
	Duration  time.Duration
	DryRun    bool
}

// Run executes the stages selected by opts in order. The first stage error
// ends the run and is returned wrapped with the stage name.
func (m *Manager) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	plan, err := Plan(opts.From, opts.To)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{RunID: uuid.NewString(), Planned: plan, DryRun: opts.DryRun}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, m.logger), "workflow")
	start := time.Now()

	logger.Info("export run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("from", opts.From.String()),
		logging.String("to", opts.To.String()),
		logging.Int("stages", len(plan)),
		logging.String("output_dir", m.cfg.Paths.OutputDir),
		logging.Bool("dry_run", opts.DryRun),
	)

	if opts.DryRun {
		for _, s := range plan {
			logger.Info("would run stage",
				logging.String(logging.FieldStage, s.String()),
				logging.String("summary", s.Summary()),
			)
		}
		return summary, nil
	}

	if !opts.SkipPreflight {
		if err := m.checkPlan(ctx, logger, plan); err != nil {
			return summary, err
		}
	}

	current := opts.From
	for {
		if err := ctx.Err(); err != nil {
			logger.Warn("export run interrupted",
				logging.String(logging.FieldEventType, "run_interrupted"),
				logging.String("next_stage", current.String()),
			)
			return summary, err
		}
		if err := m.executeStage(ctx, current); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}
		summary.Completed = append(summary.Completed, current)
		if current == opts.To {
			break
		}
		next, ok := current.Next()
		if !ok {
			break
		}
		current = next
	}

	summary.Duration = time.Since(start)
	logger.Info("export run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("stages", len(summary.Completed)),
		logging.Duration("run_duration", summary.Duration),
	)
	return summary, nil
}

func (m *Manager) checkPlan(ctx context.Context, logger *slog.Logger, plan []Stage) error {
	for _, s := range plan {
		handler, err := m.handlerFor(s)
		if err != nil {
			return err
		}
		health := handler.HealthCheck(ctx)
		if health.Ready {
			continue
		}
		logging.ErrorWithContext(logger, "stage inputs missing", "preflight_failure",
			logging.String(logging.FieldStage, s.String()),
			logging.String("detail", health.Detail),
			logging.String(logging.FieldErrorHint, "run `vtripper doctor` to see every failing check"),
		)
		return services.Wrap(services.ErrConfiguration, s.String(), "preflight", health.Detail, nil)
	}
	return nil
}

func (m *Manager) executeStage(ctx context.Context, s Stage) error {
	stageCtx := services.WithStage(ctx, s.String())
	stageLogger := logging.NewComponentLogger(logging.WithContext(stageCtx, m.logger), "workflow")

	handler, err := m.handlerFor(s)
	if err != nil {
		return err
	}

	stageStart := time.Now()
	stageLogger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("summary", s.Summary()),
	)

	if err := handler.Execute(stageCtx); err != nil {
		if errors.Is(err, context.Canceled) {
			stageLogger.Debug("stage interrupted by shutdown")
			return err
		}
		m.handleStageFailure(stageLogger, err, time.Since(stageStart))
		return fmt.Errorf("stage %s: %w", s, err)
	}

	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("stage_duration", time.Since(stageStart)),
	)
	return nil
}

func (m *Manager) handleStageFailure(logger *slog.Logger, stageErr error, elapsed time.Duration) {
	attrs := []logging.Attr{
		logging.String(logging.FieldErrorCode, services.ErrorCode(stageErr)),
		logging.String(logging.FieldErrorHint, services.ErrorHint(stageErr)),
		logging.Duration("stage_duration", elapsed),
		logging.Error(stageErr),
	}
	logging.ErrorWithContext(logger, "stage failed", "stage_failure", attrs...)
}
