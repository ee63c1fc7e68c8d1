package checks

import (
	"fmt"

	"sales-reconciler/core/domain"
)

// Nulls flags required fields that are still null in the final output. The
// merge-stage default policy should have filled every optional field, so any
// hole left here is worth surfacing.
func Nulls(enriched []domain.EnrichedSale) []domain.Issue {
	var issues []domain.Issue

	for _, row := range enriched {
		var missing []string
		if row.CustomerName == "" {
			missing = append(missing, "customer_name")
		}
		if row.ProductName == "" {
			missing = append(missing, "product_name")
		}
		if row.SaleDate.IsZero() {
			missing = append(missing, "sale_date")
		}
		if row.Status == "" {
			missing = append(missing, "status")
		}
		if row.PaymentMethod == "" {
			missing = append(missing, "payment_method")
		}
		if len(missing) == 0 {
			continue
		}

		issues = append(issues, domain.Issue{
			Kind:     domain.IssueNullValue,
			Entity:   domain.EntitySale,
			IDs:      []int64{row.SaleID},
			Severity: domain.SeverityMedium,
			Detail:   fmt.Sprintf("required fields null in final output: %v", missing),
		})
	}

	return issues
}
