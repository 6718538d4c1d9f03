package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vtripper/internal/workflow"
)

func newStagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "stages",
		Short:       "List the pipeline stages in execution order",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), stagesTable(workflow.Stages()))
			return nil
		},
	}
}

func stagesTable(stages []workflow.Stage) string {
	rows := make([][]string, 0, len(stages))
	for i, s := range stages {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.String(), s.Identifier(), s.Summary()})
	}
	return renderTable([]column{
		{Title: "#", Right: true},
		{Title: "Stage"},
		{Title: "Identifier"},
		{Title: "Description"},
	}, rows)
}
