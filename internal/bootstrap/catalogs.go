// Package bootstrap loads the read-only data every entry point needs.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"nurture/internal/activity"
	"nurture/internal/milestone/catalog"
	"nurture/internal/platform/config"
	"nurture/internal/platform/postgres"
	"nurture/pkg/platform/sentinel"
)

// Catalogs bundles the immutable catalogs shared by all requests.
type Catalogs struct {
	Milestones *catalog.Catalog
	Activities *activity.Catalog
	Records    []activity.Record
}

// LoadCatalogs loads milestones, activity buckets and recommendation records
// concurrently. The first failure cancels the others and is returned.
func LoadCatalogs(ctx context.Context, cfg config.CatalogConfig) (*Catalogs, error) {
	var out Catalogs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cat, err := loadMilestones(gctx, cfg)
		if err != nil {
			return err
		}
		out.Milestones = cat
		return nil
	})
	g.Go(func() error {
		acts, err := activity.LoadCatalog(gctx, cfg.ActivitiesPath)
		if err != nil {
			return fmt.Errorf("activities: %w", err)
		}
		out.Activities = acts
		return nil
	})
	g.Go(func() error {
		records, err := activity.LoadRecords(gctx, cfg.RecommendationsPath)
		if err != nil {
			return fmt.Errorf("recommendations: %w", err)
		}
		out.Records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func loadMilestones(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, error) {
	switch {
	case cfg.MilestonesDSN != "":
		db, err := postgres.Open(ctx, cfg.MilestonesDSN)
		if err != nil {
			return nil, fmt.Errorf("milestones: %w: %w", sentinel.ErrUnavailable, err)
		}
		defer db.Close()
		return catalog.Load(ctx, catalog.NewPostgresSource(db))
	case cfg.MilestonesPath != "":
		return catalog.Load(ctx, catalog.NewFileSource(cfg.MilestonesPath))
	default:
		return catalog.LoadDefault(ctx)
	}
}

// LogViolations logs each schema violation on its own line so operators can
// fix a bad catalog in one pass. Other errors are logged once.
func LogViolations(ctx context.Context, logger *slog.Logger, err error) {
	var sv *catalog.SchemaViolationError
	if !errors.As(err, &sv) {
		logger.ErrorContext(ctx, "failed to load catalogs", "error", err)
		return
	}
	for _, v := range sv.Violations {
		logger.ErrorContext(ctx, "milestone schema violation",
			"source", sv.Source,
			"index", v.Index,
			"milestone_id", v.MilestoneID,
			"field", v.Field,
			"reason", v.Reason,
		)
	}
	logger.ErrorContext(ctx, "milestone catalog rejected", "source", sv.Source, "violations", len(sv.Violations))
}
