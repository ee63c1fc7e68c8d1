package validate

import (
	"fmt"

	"sales-reconciler/core/domain"
	"sales-reconciler/feature/validate/checks"

	"go.uber.org/zap"
)

// DefaultJoinQualityThreshold is the minimum acceptable joined/raw ratio
// when no threshold is configured.
const DefaultJoinQualityThreshold = 0.95

// Input is the material the validation battery runs over: the merged sets,
// the enriched output, the raw sales total, and the findings the merge stage
// already raised.
type Input struct {
	Customers     []domain.Customer
	Products      []domain.Product
	Sales         []domain.Sale
	Enriched      []domain.EnrichedSale
	RawSalesTotal int
	MergeIssues   []domain.Issue
}

// Service runs the fixed battery of independent quality checks.
type Service struct {
	threshold float64
	log       *zap.Logger
}

// NewService creates a validator with the given join-quality threshold.
// A non-positive threshold falls back to the default.
func NewService(threshold float64, log *zap.Logger) *Service {
	if threshold <= 0 {
		threshold = DefaultJoinQualityThreshold
	}
	return &Service{threshold: threshold, log: log}
}

// Run executes every check and returns the full, deterministically ordered
// issue list. Findings never abort the run; the returned error is reserved
// for a check that could not run at all or a merge invariant violation
// (a duplicate identifier surviving merge), both of which are fatal.
func (s *Service) Run(in Input) ([]domain.Issue, error) {
	issues := make([]domain.Issue, 0, len(in.MergeIssues))
	issues = append(issues, in.MergeIssues...)

	issues = append(issues, checks.Nulls(in.Enriched)...)

	for entity, ids := range map[domain.EntityType][]int64{
		domain.EntityCustomer: keysOf(in.Customers),
		domain.EntityProduct:  keysOf(in.Products),
		domain.EntitySale:     keysOf(in.Sales),
	} {
		dups := checks.Duplicates(entity, ids)
		if len(dups) > 0 {
			// Uniqueness after merge is an invariant, not a data property.
			issues = append(issues, dups...)
			domain.SortIssues(issues)
			return issues, fmt.Errorf("merge invariant violated: %d duplicate %s identifiers survived merge", len(dups), entity)
		}
	}

	for entity, sample := range map[domain.EntityType]any{
		domain.EntityCustomer: domain.Customer{},
		domain.EntityProduct:  domain.Product{},
		domain.EntitySale:     domain.Sale{},
	} {
		schemaIssues, err := checks.Schema(entity, sample)
		if err != nil {
			return nil, fmt.Errorf("schema check could not run for %s: %w", entity, err)
		}
		issues = append(issues, schemaIssues...)
	}

	issues = append(issues, checks.Referential(in.Sales, in.Customers, in.Products)...)
	issues = append(issues, checks.JoinQuality(len(in.Enriched), in.RawSalesTotal, s.threshold)...)

	domain.SortIssues(issues)
	s.log.Info("Validation complete", zap.Int("issues", len(issues)))
	return issues, nil
}

func keysOf[T domain.Record](records []T) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.Key()
	}
	return ids
}
