package merge

import (
	"fmt"
	"sort"
	"strings"

	"sales-reconciler/core/domain"
)

// Result is the deduplicated output for one entity type, plus every finding
// raised while merging. Output identifiers are a subset of the union of
// input identifiers, each appearing exactly once.
type Result[T domain.Record] struct {
	// Records is the merged set, sorted by identifier ascending.
	Records []T

	// Issues are the duplicate and null-value findings raised during merge.
	// They feed the validator and the reconciliation engine.
	Issues []domain.Issue
}

// Merge combines batches of one entity type from multiple sources into a
// single deduplicated set.
//
// Records are keyed by their natural identifier. When the same identifier
// appears from multiple sources, the record from the highest-priority source
// wins and every discarded duplicate is recorded as a duplicate issue naming
// all involved sources, winner first. Records with a missing identifier are
// dropped and recorded as null-value issues. The normalize function applies
// the per-field default policy to each surviving record.
func Merge[T domain.Record](entity domain.EntityType, batches []domain.Batch[T], priority []string, normalize func(T) T) Result[T] {
	ordered := orderByPriority(batches, priority)

	winners := make(map[int64]T)
	sourcesByID := make(map[int64][]string)
	var issues []domain.Issue

	for _, batch := range ordered {
		for i, rec := range batch.Records {
			id := rec.Key()
			if id == 0 {
				issues = append(issues, domain.Issue{
					Kind:     domain.IssueNullValue,
					Entity:   entity,
					Sources:  []string{batch.Source},
					Severity: domain.SeverityHigh,
					Detail:   fmt.Sprintf("record %d from source %s has no identifier; dropped", i, batch.Source),
				})
				continue
			}

			if _, seen := winners[id]; !seen {
				winners[id] = rec
			}
			sourcesByID[id] = append(sourcesByID[id], batch.Source)
		}
	}

	for id, sources := range sourcesByID {
		if len(sources) < 2 {
			continue
		}
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueDuplicate,
			Entity:   entity,
			IDs:      []int64{id},
			Sources:  sources,
			Severity: domain.SeverityMedium,
			Detail: fmt.Sprintf("identifier %d supplied by sources [%s]; kept %s",
				id, strings.Join(sources, ", "), sources[0]),
		})
	}

	records := make([]T, 0, len(winners))
	for _, rec := range winners {
		if normalize != nil {
			rec = normalize(rec)
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key() < records[j].Key() })

	domain.SortIssues(issues)
	return Result[T]{Records: records, Issues: issues}
}

// orderByPriority arranges batches highest-priority first. Batches from
// sources absent from the priority list keep their given order at the end.
func orderByPriority[T domain.Record](batches []domain.Batch[T], priority []string) []domain.Batch[T] {
	rank := make(map[string]int, len(priority))
	for i, name := range priority {
		rank[name] = i
	}

	ordered := make([]domain.Batch[T], len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iok := rank[ordered[i].Source]
		rj, jok := rank[ordered[j].Source]
		if iok && jok {
			return ri < rj
		}
		return iok && !jok
	})
	return ordered
}
