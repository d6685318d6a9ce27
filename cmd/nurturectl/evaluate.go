package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nurture/internal/evaluation"
	evalhandler "nurture/internal/evaluation/handler"
	pstrings "nurture/pkg/platform/strings"
)

func newEvaluateCmd(opts *options) *cobra.Command {
	var (
		age       int
		completed []string
		name      string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a child's milestones for an age",
		Example: `  nurturectl evaluate --age 12 --completed M_12M_001,L_12M_002
  nurturectl evaluate --age 24 --name Asha --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if age < 0 {
				return fmt.Errorf("--age must not be negative")
			}
			c, err := opts.loadCatalogs(cmd)
			if err != nil {
				return err
			}

			engine := evaluation.NewEngine(c.Milestones, c.Activities)
			result := engine.Evaluate(evaluation.Input{
				AgeMonths: age,
				Completed: pstrings.DedupeAndTrim(completed),
				ChildName: name,
			})

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, evalhandler.FromResult(result))
			}
			fmt.Fprintf(out, "Status: %s (%.1f%%, %d/%d)\n", result.Status, result.CompletionRate, result.TotalCompleted, result.TotalExpected)
			fmt.Fprintln(out, result.Message)
			for _, m := range result.Missing {
				fmt.Fprintf(out, "  missing   %s  %s\n", m.ID, m.Description)
			}
			for _, m := range result.RedFlags {
				fmt.Fprintf(out, "  red flag  %s  %s\n", m.ID, m.Description)
			}
			if len(result.Recommendations) > 0 {
				fmt.Fprintln(out, "Recommendations:")
				for _, r := range result.Recommendations {
					fmt.Fprintf(out, "  - %s\n", r)
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&age, "age", 0, "child age in months")
	f.StringSliceVar(&completed, "completed", nil, "completed milestone IDs")
	f.StringVar(&name, "name", "", "child name used in the message")
	f.BoolVar(&asJSON, "json", false, "print the API response body")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}
