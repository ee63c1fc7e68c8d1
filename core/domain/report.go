package domain

import "github.com/shopspring/decimal"

// DropCause names why a raw record did not survive to the final dataset.
type DropCause string

const (
	CauseNullValue   DropCause = "null-value"
	CauseDuplicate   DropCause = "duplicate"
	CauseReferential DropCause = "referential-violation"
)

// DroppedRecord accounts for one raw record lost between extraction and the
// final dataset. ID is zero when the raw row had no readable identifier.
// A record dropped for several simultaneous reasons lists all of them.
type DroppedRecord struct {
	ID     int64       `json:"identifier"`
	Source string      `json:"source,omitempty"`
	Causes []DropCause `json:"causes"`
}

// FieldSummary is the distribution profile of one numeric field.
type FieldSummary struct {
	Field     string          `json:"field"`
	Min       decimal.Decimal `json:"min"`
	Max       decimal.Decimal `json:"max"`
	Mean      decimal.Decimal `json:"mean"`
	NullCount int             `json:"null_count"`
	Count     int             `json:"count"`
}

// EntityReport is the reconciliation outcome for one record family.
//
// The core accounting law is FinalCount + len(Dropped) == RawTotal whenever
// Unexplained and Orphaned are empty. Orphaned identifiers (present in the
// final set with no merged antecedent) and unexplained losses both indicate a
// pipeline defect, never a data problem.
type EntityReport struct {
	// RawCounts is the record count per source.
	RawCounts map[string]int `json:"raw_counts"`

	// RawTotal is the total raw record count across sources.
	RawTotal int `json:"raw_count"`

	// MergedCount is the record count after deduplication.
	MergedCount int `json:"merged_count"`

	// FinalCount is the record count in the final dataset.
	FinalCount int `json:"final_count"`

	// Dropped lists every raw record that did not reach the final dataset,
	// each attributed to all applicable causes.
	Dropped []DroppedRecord `json:"dropped"`

	// Orphaned lists final identifiers with no merged antecedent.
	Orphaned []int64 `json:"orphaned"`

	// Unexplained lists identifiers lost without an attributable cause.
	Unexplained []int64 `json:"unexplained"`

	// RawProfile and FinalProfile summarize numeric field distributions
	// before and after the transform, for drift comparison.
	RawProfile   []FieldSummary `json:"raw_distribution"`
	FinalProfile []FieldSummary `json:"final_distribution"`
}

// Balanced reports whether the accounting law holds for this entity.
func (r *EntityReport) Balanced() bool {
	return r.FinalCount+len(r.Dropped) == r.RawTotal &&
		len(r.Unexplained) == 0 && len(r.Orphaned) == 0
}

// ReconciliationReport is the full root-cause-analysis output, one entry per
// record family.
type ReconciliationReport struct {
	Entities map[EntityType]*EntityReport `json:"entities"`
}

// HasDefects reports whether any entity carries defect-class findings.
func (r *ReconciliationReport) HasDefects() bool {
	for _, e := range r.Entities {
		if len(e.Orphaned) > 0 || len(e.Unexplained) > 0 {
			return true
		}
	}
	return false
}
