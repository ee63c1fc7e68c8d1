package checks

import (
	"fmt"

	"sales-reconciler/core/domain"
)

// JoinQuality compares the count of successfully joined sales against the
// total raw sales count. A ratio below the configured threshold produces a
// single high-severity issue. An empty raw set trivially passes.
func JoinQuality(joined, rawTotal int, threshold float64) []domain.Issue {
	if rawTotal == 0 {
		return nil
	}

	ratio := float64(joined) / float64(rawTotal)
	if ratio >= threshold {
		return nil
	}

	return []domain.Issue{{
		Kind:     domain.IssueJoinQuality,
		Entity:   domain.EntitySale,
		Severity: domain.SeverityHigh,
		Detail: fmt.Sprintf("join quality %.4f below threshold %.4f (%d of %d sales joined)",
			ratio, threshold, joined, rawTotal),
	}}
}
