package pipeline

import (
	"context"
	"fmt"

	"sales-reconciler/core/config"
	"sales-reconciler/core/domain"
	"sales-reconciler/core/logger"
	"sales-reconciler/feature/enrich"
	"sales-reconciler/feature/extract"
	"sales-reconciler/feature/merge"
	"sales-reconciler/feature/rca"
	"sales-reconciler/feature/report"
	"sales-reconciler/feature/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is one full pipeline run: the outcome classification, the ordered
// issue list, the reconciliation report, the written artifacts, and the
// left-join cohort rows.
type Result struct {
	Outcome   Outcome
	Issues    []domain.Issue
	Report    *domain.ReconciliationReport
	Artifacts *report.Artifacts
	Cohorts   []enrich.CustomerCohort
}

// Service sequences the pipeline: parallel extraction, merge, enrich, then
// validation and reconciliation over the same enriched output, then
// reporting. Everything between the extraction workers is single-threaded
// over whole in-memory batches.
type Service struct {
	sources   []*extract.Source
	mergeCfg  config.MergeConfig
	threshold float64
	reporter  *report.Reporter
	log       *zap.Logger
	runID     string
}

// New creates a pipeline over the given sources. Each run is stamped with a
// fresh run identifier for log correlation and artifact upload prefixes.
func New(sources []*extract.Source, mergeCfg config.MergeConfig, threshold float64, reporter *report.Reporter, log *zap.Logger) *Service {
	runID := uuid.NewString()
	return &Service{
		sources:   sources,
		mergeCfg:  mergeCfg,
		threshold: threshold,
		reporter:  reporter,
		log:       logger.WithRun(log, runID),
		runID:     runID,
	}
}

// RunID returns this service's run identifier.
func (s *Service) RunID() string { return s.runID }

// Run executes the full pipeline. A returned error is fatal (extraction,
// schema, or an unrunnable check); recoverable and defect-class findings
// never error and are always delivered in full through the Result.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	snapshots, err := s.extract(ctx)
	if err != nil {
		return nil, err
	}

	var (
		rawCustomers []domain.Batch[domain.Customer]
		rawProducts  []domain.Batch[domain.Product]
		rawSales     []domain.Batch[domain.Sale]
	)
	for _, snap := range snapshots {
		rawCustomers = append(rawCustomers, snap.Customers)
		rawProducts = append(rawProducts, snap.Products)
		rawSales = append(rawSales, snap.Sales)
	}

	mergedCustomers := merge.Merge(domain.EntityCustomer, rawCustomers,
		s.mergeCfg.PriorityFor(domain.EntityCustomer), merge.NormalizeCustomer)
	mergedProducts := merge.Merge(domain.EntityProduct, rawProducts,
		s.mergeCfg.PriorityFor(domain.EntityProduct), merge.NormalizeProduct)
	mergedSales := merge.Merge(domain.EntitySale, rawSales,
		s.mergeCfg.PriorityFor(domain.EntitySale), merge.NormalizeSale)

	mergeIssues := make([]domain.Issue, 0,
		len(mergedCustomers.Issues)+len(mergedProducts.Issues)+len(mergedSales.Issues))
	mergeIssues = append(mergeIssues, mergedCustomers.Issues...)
	mergeIssues = append(mergeIssues, mergedProducts.Issues...)
	mergeIssues = append(mergeIssues, mergedSales.Issues...)

	finalCustomers := enrich.StandardizeCustomers(mergedCustomers.Records)
	finalProducts := enrich.StandardizeProducts(mergedProducts.Records)

	enriched := enrich.Enrich(mergedSales.Records, finalCustomers, finalProducts, s.log)

	rawSalesTotal := 0
	for _, b := range rawSales {
		rawSalesTotal += len(b.Records)
	}

	validator := validate.NewService(s.threshold, s.log)
	issues, err := validator.Run(validate.Input{
		Customers:     finalCustomers,
		Products:      finalProducts,
		Sales:         mergedSales.Records,
		Enriched:      enriched.Sales,
		RawSalesTotal: rawSalesTotal,
		MergeIssues:   mergeIssues,
	})
	if err != nil {
		return nil, fmt.Errorf("validation could not run: %w", err)
	}

	engine := rca.NewEngine(rca.Inputs{
		RawCustomers:    rawCustomers,
		RawProducts:     rawProducts,
		RawSales:        rawSales,
		MergedCustomers: mergedCustomers.Records,
		MergedProducts:  mergedProducts.Records,
		MergedSales:     mergedSales.Records,
		FinalCustomers:  finalCustomers,
		FinalProducts:   finalProducts,
		Final:           enriched.Sales,
		MergeIssues:     mergeIssues,
		Violations:      enriched.Violations,
	}, s.log)
	reconReport, err := engine.Run()
	if err != nil {
		return nil, fmt.Errorf("reconciliation could not run: %w", err)
	}

	arts, err := s.reporter.Write(ctx, enriched.Sales, issues, reconReport, s.runID)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Outcome:   classify(issues, reconReport),
		Issues:    issues,
		Report:    reconReport,
		Artifacts: arts,
		Cohorts:   enrich.CohortByCustomer(finalCustomers, enriched.Sales, s.log),
	}
	s.log.Info("Pipeline complete",
		zap.String("outcome", res.Outcome.String()),
		zap.Int("rows", len(enriched.Sales)),
		zap.Int("issues", len(issues)))
	return res, nil
}

// extract runs one worker per source, the only sanctioned concurrency in
// the pipeline. Each worker produces an immutable snapshot that is handed
// off, never shared.
func (s *Service) extract(ctx context.Context) ([]*extract.Snapshot, error) {
	snapshots := make([]*extract.Snapshot, len(s.sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		g.Go(func() error {
			snap, err := src.Read(ctx)
			if err != nil {
				return err
			}
			snapshots[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}
