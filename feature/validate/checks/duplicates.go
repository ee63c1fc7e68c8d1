package checks

import (
	"fmt"
	"sort"

	"sales-reconciler/core/domain"
)

// Duplicates flags identifiers appearing more than once in a post-merge set.
// The merge stage enforces uniqueness by construction, so any finding here
// indicates a defect in the pipeline, not in the data.
func Duplicates(entity domain.EntityType, ids []int64) []domain.Issue {
	seen := make(map[int64]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}

	var dups []int64
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i] < dups[j] })

	issues := make([]domain.Issue, 0, len(dups))
	for _, id := range dups {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueDuplicate,
			Entity:   entity,
			IDs:      []int64{id},
			Severity: domain.SeverityCritical,
			Detail:   fmt.Sprintf("identifier %d appears %d times after merge", id, seen[id]),
		})
	}
	return issues
}
