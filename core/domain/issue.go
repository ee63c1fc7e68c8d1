package domain

import "sort"

// IssueKind classifies a data-quality finding.
type IssueKind string

const (
	IssueNullValue   IssueKind = "null-value"
	IssueDuplicate   IssueKind = "duplicate"
	IssueSchema      IssueKind = "schema-mismatch"
	IssueReferential IssueKind = "referential-violation"
	IssueJoinQuality IssueKind = "join-quality"
)

// kindOrder fixes the group order used when sorting issue lists.
var kindOrder = map[IssueKind]int{
	IssueNullValue:   0,
	IssueDuplicate:   1,
	IssueSchema:      2,
	IssueReferential: 3,
	IssueJoinQuality: 4,
}

// Severity ranks how serious a finding is. SeverityCritical is reserved for
// defect-class findings (orphaned records, unexplained loss) that indicate a
// bug in the pipeline itself rather than in the data.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase name used in serialized reports.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as its name rather than its rank.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Issue is a single validation or merge finding. Issues never abort the
// pipeline; they are accumulated and delivered in full.
type Issue struct {
	// Kind classifies the finding.
	Kind IssueKind `json:"kind"`

	// Entity is the record family the finding concerns.
	Entity EntityType `json:"entity_type"`

	// IDs are the affected record identifiers, ascending. Empty when the
	// affected rows had no readable identifier.
	IDs []int64 `json:"identifiers"`

	// Sources names the source systems involved, highest priority first.
	// Populated for merge-time findings (duplicates, null drops).
	Sources []string `json:"sources,omitempty"`

	// Severity ranks the finding.
	Severity Severity `json:"severity"`

	// Detail is a free-form human-readable explanation.
	Detail string `json:"detail"`
}

// SortIssues orders a finding list deterministically: grouped by kind, then
// by first affected identifier ascending, then by detail as a tiebreaker.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if kindOrder[a.Kind] != kindOrder[b.Kind] {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		af, bf := firstID(a), firstID(b)
		if af != bf {
			return af < bf
		}
		return a.Detail < b.Detail
	})
}

func firstID(i Issue) int64 {
	if len(i.IDs) == 0 {
		return -1
	}
	return i.IDs[0]
}
