package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"nurture/internal/bootstrap"
	"nurture/internal/platform/config"
	"nurture/internal/platform/logger"
)

// options are the persistent flags shared by every subcommand. Empty catalog
// paths fall back to the environment and then to the embedded defaults.
type options struct {
	milestones      string
	activities      string
	recommendations string
	logLevel        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "nurturectl",
		Short:         "Milestone evaluation and dataset tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.milestones, "milestones", "", "milestone catalog file (JSON or YAML)")
	pf.StringVar(&opts.activities, "activities", "", "activity bucket file")
	pf.StringVar(&opts.recommendations, "recommendations", "", "recommendation record file")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newEvaluateCmd(opts),
		newChatCmd(opts),
		newCatalogCmd(opts),
		newDatasetCmd(opts),
	)
	return root
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	return logger.NewWithWriter(cmd.ErrOrStderr(), "text", o.logLevel)
}

func (o *options) catalogConfig() config.CatalogConfig {
	cfg := config.Load().Catalog
	if o.milestones != "" {
		cfg.MilestonesPath = o.milestones
		cfg.MilestonesDSN = ""
	}
	if o.activities != "" {
		cfg.ActivitiesPath = o.activities
	}
	if o.recommendations != "" {
		cfg.RecommendationsPath = o.recommendations
	}
	return cfg
}

func (o *options) loadCatalogs(cmd *cobra.Command) (*bootstrap.Catalogs, error) {
	ctx := cmd.Context()
	c, err := bootstrap.LoadCatalogs(ctx, o.catalogConfig())
	if err != nil {
		bootstrap.LogViolations(ctx, o.logger(cmd), err)
		return nil, err
	}
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
