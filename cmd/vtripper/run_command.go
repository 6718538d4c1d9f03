package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vtripper/internal/runlock"
	"vtripper/internal/workflow"
)

type runOptions struct {
	from          string
	to            string
	dryRun        bool
	skipPreflight bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the export pipeline",
		Long: "Run the export pipeline from the configured start stage to the last stage.\n\n" +
			"The pre-clean stage deletes the output directory. Use --from to resume after fixing a failure.\n\n" +
			"--skip-preflight only skips the up-front input checks. A decompiler that is missing or\n" +
			"cannot start still fails rip-project; a decompiler that exits non-zero is logged as a warning.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "First stage to run (overrides pipeline.start_stage)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Last stage to run (overrides pipeline.stop_stage)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "List the stages that would run without running them")
	cmd.Flags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "Start without checking stage inputs")
	return cmd
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	runOpts, err := workflow.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(opts.from); name != "" {
		if runOpts.From, err = workflow.ParseStage(name); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
	}
	if name := strings.TrimSpace(opts.to); name != "" {
		if runOpts.To, err = workflow.ParseStage(name); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}
	runOpts.DryRun = opts.dryRun
	runOpts.SkipPreflight = opts.skipPreflight

	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	if !runOpts.DryRun {
		lock, err := runlock.Acquire(cfg.Paths.LogDir)
		if err != nil {
			return err
		}
		defer func() { _ = lock.Release() }()
		logger.Debug("run lock acquired", "lock_path", lock.Path())
	}
	mgr, err := workflow.NewManager(cfg, logger)
	if err != nil {
		return err
	}

	summary, err := mgr.Run(cmd.Context(), runOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary.DryRun {
		fmt.Fprintf(out, "Dry run: %d stage(s) would run\n", len(summary.Planned))
		for i, s := range summary.Planned {
			fmt.Fprintf(out, "  %d. %-15s %s\n", i+1, s, s.Summary())
		}
		return nil
	}
	fmt.Fprintf(out, "Completed %d stage(s) in %s (run %s)\n",
		len(summary.Completed), summary.Duration.Round(time.Millisecond), summary.RunID)
	fmt.Fprintf(out, "Unity project: %s\n", cfg.Paths.OutputDir)
	return nil
}
