package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect milestone and activity catalogs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load every catalog and report schema violations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.loadCatalogs(cmd)
			if err != nil {
				return fmt.Errorf("catalog invalid: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d milestones in %d domains, %d activity buckets, %d recommendations\n",
				c.Milestones.Len(), len(c.Milestones.Domains()), c.Activities.Len(), len(c.Records))
			return nil
		},
	})
	return cmd
}
