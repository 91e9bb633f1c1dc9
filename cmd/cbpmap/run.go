package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cbpdata/cbpmap/internal/config"
	"github.com/cbpdata/cbpmap/internal/logging"
	"github.com/cbpdata/cbpmap/internal/report"
	"github.com/cbpdata/cbpmap/internal/source"
	"github.com/cbpdata/cbpmap/pkg/cbpmap"
	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/cbpdata/cbpmap/pkg/cbpmap/output"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type runFlags struct {
	outputDir    string
	downloadsDir string
	sqlitePath   string
	summaryPath  string
	jsonOut      bool
	pretty       bool
	noQA         bool
	cleanupDays  int
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [input.xlsx]",
		Short: "Extract series from a workbook and write DATA, META and QA files",
		Long: `run processes the given workbook, or selects one from the downloads
directory when no argument is given (files named after mps, monetary, policy,
rbnz or data first, otherwise the most recent).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			return runPipeline(cmd.Context(), cfg, f, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Output directory (default from config: mapped_output)")
	cmd.Flags().StringVar(&f.downloadsDir, "downloads-dir", "", "Directory scanned for workbooks when no input is given")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "Also store the run in this SQLite catalog")
	cmd.Flags().StringVar(&f.summaryPath, "summary", "", "Summary report path, empty to skip (default from config: pipeline_summary.txt)")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Print the run result as JSON to stdout")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&f.noQA, "no-qa", false, "Skip the per-sheet QA workbook")
	cmd.Flags().IntVar(&f.cleanupDays, "cleanup-days", 0, "Remove files older than N days from outputs, and from downloads when no input is given (0 disables)")
	return cmd
}

// apply overrides configuration values with flags given on the command line
// and validates the result.
func (f runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if f.outputDir != "" {
		cfg.Paths.OutputDir = f.outputDir
	}
	if f.downloadsDir != "" {
		cfg.Paths.DownloadsDir = f.downloadsDir
	}
	if f.sqlitePath != "" {
		cfg.Catalog.Path = f.sqlitePath
	}
	if cmd.Flags().Changed("summary") {
		cfg.Paths.SummaryFile = f.summaryPath
	}
	if f.noQA {
		cfg.Extraction.SkipQA = true
	}
	if cmd.Flags().Changed("cleanup-days") {
		cfg.Retention.Days = f.cleanupDays
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	return cfg, nil
}

func runPipeline(ctx context.Context, cfg *config.Config, f runFlags, args []string, stdout io.Writer) error {
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	runID := uuid.NewString()
	log := logger.With(slog.String("run_id", runID))
	started := time.Now()
	log.Info("Starting CBP mapping run",
		slog.String("downloads_dir", cfg.Paths.DownloadsDir),
		slog.String("output_dir", cfg.Paths.OutputDir))

	input, sources, err := resolveInput(cfg.Paths.DownloadsDir, args, log)
	if err != nil {
		log.Error("No input workbook", slog.String("error", err.Error()))
		return err
	}
	log.Info("Processing file", slog.String("file", input))

	res, err := cbpmap.Extract(ctx, input, cbpmap.Options{
		MinPoints:   cfg.Extraction.MinPoints,
		DateColumns: cfg.Extraction.DateColumns,
		Constants:   cfg.Metadata.Constants(),
		RunID:       runID,
		Logger:      logger,
	})
	if err != nil {
		log.Error("Extraction failed", slog.String("error", err.Error()))
		return fmt.Errorf("extraction failed: %w", err)
	}

	artifacts, err := output.WriteArtifacts(cfg.Paths.OutputDir, res, output.WriteOptions{SkipQA: cfg.Extraction.SkipQA})
	if err != nil {
		log.Error("Failed to write outputs", slog.String("error", err.Error()))
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	for _, p := range artifacts.Files() {
		log.Info("Created output", slog.String("path", p))
	}

	if cfg.Catalog.Path != "" {
		if err := saveCatalog(cfg.Catalog.Path, res, started); err != nil {
			log.Error("Failed to update catalog", slog.String("path", cfg.Catalog.Path), slog.String("error", err.Error()))
			return fmt.Errorf("failed to update catalog: %w", err)
		}
		log.Info("Catalog updated", slog.String("path", cfg.Catalog.Path))
	}

	if f.jsonOut {
		data, err := output.ToJSON(res, f.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	}

	if cfg.Paths.SummaryFile != "" {
		summary := report.Summary{
			RunID:       runID,
			Started:     started,
			Finished:    time.Now(),
			Status:      "SUCCESS",
			SourceFile:  input,
			Series:      len(res.Series),
			Periods:     res.Timeline.Start + " to " + res.Timeline.End,
			OutputFiles: artifacts.Files(),
			SourceFiles: sources,
		}
		if err := report.WriteFile(cfg.Paths.SummaryFile, summary); err != nil {
			log.Warn("Error creating summary report", slog.String("error", err.Error()))
		} else {
			log.Info("Summary report created", slog.String("path", cfg.Paths.SummaryFile))
		}
	}

	if cfg.Retention.Days > 0 {
		maxAge := time.Duration(cfg.Retention.Days) * 24 * time.Hour
		removed, err := source.Cleanup(cleanupDirs(cfg.Paths, args), maxAge, time.Now())
		for _, p := range removed {
			log.Info("Deleted old file", slog.String("path", p))
		}
		if err != nil {
			log.Warn("Error during cleanup", slog.String("error", err.Error()))
		}
	}

	log.Info("Run completed",
		slog.Int("series", len(res.Series)),
		slog.Duration("elapsed", time.Since(started)))
	return nil
}

// cleanupDirs lists the directories pruned after a run. The downloads
// directory is left alone when the input was given explicitly.
func cleanupDirs(paths config.PathsConfig, args []string) []string {
	if len(args) > 0 {
		return []string{paths.OutputDir}
	}
	return []string{paths.DownloadsDir, paths.OutputDir}
}

// resolveInput returns the workbook to process and the candidate source files.
func resolveInput(downloadsDir string, args []string, log *slog.Logger) (string, []string, error) {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %s", args[0])
		}
		return args[0], []string{args[0]}, nil
	}

	files, err := source.FindWorkbooks(downloadsDir)
	if err != nil {
		return "", nil, err
	}
	log.Info("Found Excel files", slog.Int("count", len(files)), slog.String("dir", downloadsDir))

	chosen, why, err := source.Select(files)
	if err != nil {
		return "", nil, fmt.Errorf("%w in %s", err, downloadsDir)
	}
	log.Info("Selected file", slog.String("file", filepath.Base(chosen.Path)), slog.String("reason", why))

	paths := make([]string, len(files))
	for i, wf := range files {
		paths[i] = wf.Path
	}
	return chosen.Path, paths, nil
}

func saveCatalog(path string, res *models.Result, started time.Time) error {
	catalog, err := output.OpenCatalog(path)
	if err != nil {
		return err
	}
	defer catalog.Close()
	return catalog.SaveRun(res, started.Format(cbpmap.ReleaseDateLayout))
}
