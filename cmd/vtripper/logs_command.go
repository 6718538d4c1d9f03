package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vtripper/internal/logging"
	"vtripper/internal/logs"
	"vtripper/internal/workflow"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var stageName string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if lines < 0 {
				return fmt.Errorf("--lines must be zero or greater")
			}

			match := ""
			if strings.TrimSpace(stageName) != "" {
				s, err := workflow.ParseStage(stageName)
				if err != nil {
					return err
				}
				match = stageMatcher(cfg.Logging.Format, s)
			}

			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			out := cmd.OutOrStdout()
			recent, offset, err := logs.Last(path, lines, match)
			if err != nil {
				return err
			}
			if len(recent) == 0 && !follow {
				fmt.Fprintf(out, "No log entries in %s\n", path)
				return nil
			}
			for _, line := range recent {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, match, logs.DefaultPollInterval, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&stageName, "stage", "", "Only show lines logged by this stage")
	return cmd
}

// stageMatcher returns the substring that marks a log line as belonging to s
// in the given log format.
func stageMatcher(format string, s workflow.Stage) string {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return fmt.Sprintf("%q:%q", logging.FieldStage, s.String())
	}
	return "[" + s.String() + "]"
}
