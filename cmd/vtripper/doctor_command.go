package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vtripper/internal/preflight"
	"vtripper/internal/workflow"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the decompiler, game install, and folders a run needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			if !ctx.configSeen {
				configDetail += " (not found; defaults in use)"
			}
			lines = append(lines, renderStatusLine("Config file", statusInfo, configDetail, colorize))
			lines = append(lines, renderStatusLine("Start stage", statusInfo, cfg.Pipeline.StartStage, colorize))
			lines = append(lines, renderStatusLine("Timeout", statusInfo, timeoutLabel(cfg.AssetRipper.TimeoutSeconds), colorize))
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			checks, failures := checkLines(preflight.RunAll(cmd.Context(), cfg), colorize)
			lines = append(lines, checks...)
			lines = append(lines, "")

			mgr, err := workflow.NewManager(cfg, nil)
			if err != nil {
				return err
			}
			health := mgr.HealthCheck(cmd.Context())
			rows := make([][]string, 0, len(health))
			for _, h := range health {
				rows = append(rows, []string{h.Name, h.Status(), yesNo(h.Ready), h.Detail})
			}
			lines = append(lines, renderSectionHeader("Stages", colorize)...)
			lines = append(lines, renderTable([]column{
				{Title: "Stage"}, {Title: "Status"}, {Title: "Ready"}, {Title: "Detail", Width: 72},
			}, rows))

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if failures > 0 {
				return fmt.Errorf("doctor found %d failing check(s)", failures)
			}
			return nil
		},
	}
}

func timeoutLabel(seconds int) string {
	if seconds <= 0 {
		return "none"
	}
	return fmt.Sprintf("%ds", seconds)
}
