package rca

import (
	"fmt"

	"sales-reconciler/core/domain"

	"go.uber.org/zap"
)

// Stage is the engine's position in its fixed census -> diff -> profile
// sequence. Stages run in order exactly once; the engine is not restartable
// mid-stage.
type Stage int

const (
	StagePending Stage = iota
	StageCensus
	StageDiff
	StageProfile
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageCensus:
		return "census"
	case StageDiff:
		return "diff"
	case StageProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// Inputs is everything the engine diffs: the raw per-source batches, the
// merged sets, the final sets, and the findings raised upstream. All of it
// is read-only to the engine.
type Inputs struct {
	RawCustomers []domain.Batch[domain.Customer]
	RawProducts  []domain.Batch[domain.Product]
	RawSales     []domain.Batch[domain.Sale]

	MergedCustomers []domain.Customer
	MergedProducts  []domain.Product
	MergedSales     []domain.Sale

	// FinalCustomers and FinalProducts are the standardized dimension sets
	// that ship with the output; Final is the enriched sales dataset.
	FinalCustomers []domain.Customer
	FinalProducts  []domain.Product
	Final          []domain.EnrichedSale

	// MergeIssues attribute null drops and duplicate losses; Violations
	// attribute join exclusions.
	MergeIssues []domain.Issue
	Violations  []domain.ReferenceViolation
}

// Engine explains every discrepancy between the raw sources and the final
// dataset. Its core correctness property: for every entity type with no
// defect-class findings, final_count + len(dropped) == raw_count.
type Engine struct {
	in     Inputs
	log    *zap.Logger
	stage  Stage
	report *domain.ReconciliationReport
}

// NewEngine creates an engine over one pipeline run's snapshots.
func NewEngine(in Inputs, log *zap.Logger) *Engine {
	return &Engine{
		in:  in,
		log: log,
		report: &domain.ReconciliationReport{
			Entities: make(map[domain.EntityType]*domain.EntityReport),
		},
	}
}

// Run executes the three stages in order and returns the finished report.
func (e *Engine) Run() (*domain.ReconciliationReport, error) {
	if err := e.Census(); err != nil {
		return nil, err
	}
	if err := e.Diff(); err != nil {
		return nil, err
	}
	if err := e.Profile(); err != nil {
		return nil, err
	}
	return e.report, nil
}

// Report returns the finished report. It errors until Profile has run.
func (e *Engine) Report() (*domain.ReconciliationReport, error) {
	if e.stage != StageProfile {
		return nil, fmt.Errorf("report not ready: engine is at stage %s", e.stage)
	}
	return e.report, nil
}

func (e *Engine) advance(from, to Stage) error {
	if e.stage != from {
		return fmt.Errorf("cannot run %s stage: engine is at stage %s, expected %s", to, e.stage, from)
	}
	e.stage = to
	return nil
}

// Census counts raw records per source per entity type, merged records, and
// final records.
func (e *Engine) Census() error {
	if err := e.advance(StagePending, StageCensus); err != nil {
		return err
	}

	e.report.Entities[domain.EntityCustomer] = censusOf(
		e.in.RawCustomers, len(e.in.MergedCustomers), len(e.in.FinalCustomers))
	e.report.Entities[domain.EntityProduct] = censusOf(
		e.in.RawProducts, len(e.in.MergedProducts), len(e.in.FinalProducts))
	e.report.Entities[domain.EntitySale] = censusOf(
		e.in.RawSales, len(e.in.MergedSales), len(e.in.Final))

	for entity, rep := range e.report.Entities {
		e.log.Info("Census",
			zap.String("entity", string(entity)),
			zap.Int("raw", rep.RawTotal),
			zap.Int("merged", rep.MergedCount),
			zap.Int("final", rep.FinalCount))
	}
	return nil
}

func censusOf[T domain.Record](batches []domain.Batch[T], merged, final int) *domain.EntityReport {
	rep := &domain.EntityReport{
		RawCounts:   make(map[string]int, len(batches)),
		MergedCount: merged,
		FinalCount:  final,
		Dropped:     []domain.DroppedRecord{},
		Orphaned:    []int64{},
		Unexplained: []int64{},
	}
	for _, b := range batches {
		rep.RawCounts[b.Source] += len(b.Records)
		rep.RawTotal += len(b.Records)
	}
	return rep
}
