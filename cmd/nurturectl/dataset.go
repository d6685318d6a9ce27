package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"nurture/internal/dataset"
	"nurture/internal/platform/config"
)

const (
	mappingFile     = "video_mapping.json"
	deidentifiedCSV = "deidentified_metadata.csv"
	reportFile      = "dataset_report.txt"
)

func newDatasetCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage the milestone video dataset",
	}
	cmd.AddCommand(newDeidentifyCmd(opts), newReportCmd())
	return cmd
}

func newDeidentifyCmd(opts *options) *cobra.Command {
	var (
		videoDir    string
		outputDir   string
		mode        string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "deidentify <manifest.csv>",
		Short: "Replace video filenames with salted hashes",
		Long: `Hashes each filename with VIDEO_HASH_SALT and writes video_mapping.json and
deidentified_metadata.csv into the output directory. In copy mode the videos are
copied there under their new names; rename mode renames them in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dataset.ParseMode(mode)
			if err != nil {
				return err
			}
			manifest, err := dataset.LoadManifest(args[0])
			if err != nil {
				return err
			}
			hasher, err := dataset.NewHasher(config.HashSalt())
			if err != nil {
				return err
			}

			outcome, err := dataset.Deidentify(cmd.Context(), manifest, hasher, dataset.Options{
				Mode:        m,
				VideoDir:    videoDir,
				OutputDir:   outputDir,
				Concurrency: concurrency,
				Logger:      opts.logger(cmd),
			})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outputDir, 0o750); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := dataset.WriteMapping(filepath.Join(outputDir, mappingFile), outcome.Mapping); err != nil {
				return err
			}
			if err := dataset.SaveDeidentified(filepath.Join(outputDir, deidentifiedCSV), manifest, outcome.Hashed); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows, %d copied, %d renamed, %d missing, %d failed\n", m,
				len(outcome.Files),
				outcome.Count(dataset.StatusCopied),
				outcome.Count(dataset.StatusRenamed),
				outcome.Count(dataset.StatusMissing),
				outcome.Count(dataset.StatusFailed),
			)
			if n := outcome.Count(dataset.StatusFailed); n > 0 {
				return fmt.Errorf("%d files could not be de-identified", n)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&videoDir, "videos", "", "directory holding the original videos")
	f.StringVar(&outputDir, "out", "deidentified", "output directory")
	f.StringVar(&mode, "mode", string(dataset.ModeDryRun), "dry-run, copy or rename")
	f.IntVar(&concurrency, "concurrency", dataset.DefaultConcurrency, "parallel file operations")
	return cmd
}

func newReportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report <manifest.csv>",
		Short: "Print dataset distribution and data quality statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := dataset.LoadManifest(args[0])
			if err != nil {
				return err
			}
			summary := dataset.Summarize(manifest)
			if err := summary.Render(cmd.OutOrStdout(), time.Now()); err != nil {
				return err
			}
			if output == "" {
				return nil
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			return errors.Join(summary.Render(f, time.Now()), f.Close())
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "also write the report to this file (e.g. "+reportFile+")")
	return cmd
}
