package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"convoy-pipeline/internal/pipeline"
)

func newStageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stage [input]",
		Short: "Show the detected stage and the steps a run would take",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			input, err := resolveInput(cmd, args, opts.input)
			if err != nil {
				return err
			}
			paths, stage := pipeline.Inspect(input, cfg, opts.force)
			steps := pipeline.PlanFor(stage).Steps()
			planned := "none"
			if len(steps) > 0 {
				planned = strings.Join(steps, ", ")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "input:  %s\n", paths.Input)
			fmt.Fprintf(out, "stage:  %s\n", stage)
			fmt.Fprintf(out, "steps:  %s\n", planned)
			return nil
		},
	}
}
