package cmd

import (
	"context"
	"fmt"

	"sales-reconciler/core/config"
	"sales-reconciler/core/database"
	"sales-reconciler/core/logger"
	"sales-reconciler/core/storage"
	"sales-reconciler/feature/extract"
	"sales-reconciler/feature/pipeline"
	"sales-reconciler/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for run command
	outputDir string
	upload    bool
)

// runCmd executes one full reconciliation run.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full reconciliation pipeline",
	Long: `Run extraction, merge, enrichment, validation, and root-cause analysis
over both configured sources, then write the run artifacts.

Exit codes:
  0  clean run, no findings
  1  fatal error (source unavailable, schema mismatch, unrunnable check)
  2  data-quality findings, all attributable
  3  defect-class findings (orphaned identifiers or unexplained losses)`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "Override the artifact output directory")
	runCmd.Flags().BoolVar(&upload, "upload", false, "Publish artifacts to object storage after writing")

	RootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if outputDir != "" {
		cfg.Report.OutputDir = outputDir
	}
	if upload {
		cfg.Report.Upload = true
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	sources, err := buildSources(cfg, l)
	if err != nil {
		return err
	}

	reporter := report.New(cfg.Report.OutputDir, l)
	if cfg.Report.Upload {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		reporter = reporter.WithUpload(client, cfg.Storage.Bucket)
	}

	svc := pipeline.New(sources, cfg.Merge, cfg.Validate.JoinQualityThreshold, reporter, l)
	l.Info("Starting reconciliation run", zap.String("run_id", svc.RunID()))

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	for _, issue := range res.Issues {
		l.Warn("Validation issue",
			zap.String("kind", string(issue.Kind)),
			zap.String("entity", string(issue.Entity)),
			zap.String("severity", issue.Severity.String()),
			zap.String("detail", issue.Detail))
	}

	if code := res.Outcome.ExitCode(); code != 0 {
		l.Warn("Run finished with findings",
			zap.String("outcome", res.Outcome.String()), zap.Int("exit_code", code))
		return &exitError{code: code}
	}

	l.Info("Run finished clean", zap.String("dataset", res.Artifacts.DatasetPath))
	return nil
}

// buildSources connects both configured sources and wraps them as readers.
func buildSources(cfg *config.Config, l *zap.Logger) ([]*extract.Source, error) {
	sources := make([]*extract.Source, 0, 2)
	for _, sc := range []config.SourceConfig{cfg.SourceA, cfg.SourceB} {
		db, err := database.Connect(sc.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to source %s: %w", sc.Name, err)
		}
		sources = append(sources, extract.NewSource(sc.Name, db, l))
	}
	return sources, nil
}
