package checks

import (
	"fmt"
	"sort"

	"sales-reconciler/core/domain"
)

// Referential re-validates every merged sale's customer and product
// references against the merged dimension sets. It runs independently of the
// enrich stage's join so that divergence between the two is detectable.
//
// Findings are grouped by the missing referenced identifier: one issue per
// unresolved customer or product, listing the sales that point at it.
func Referential(sales []domain.Sale, customers []domain.Customer, products []domain.Product) []domain.Issue {
	customerIDs := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		customerIDs[c.CustomerID] = struct{}{}
	}
	productIDs := make(map[int64]struct{}, len(products))
	for _, p := range products {
		productIDs[p.ProductID] = struct{}{}
	}

	missingCustomers := make(map[int64][]int64)
	missingProducts := make(map[int64][]int64)
	for _, s := range sales {
		if _, ok := customerIDs[s.CustomerID]; !ok {
			missingCustomers[s.CustomerID] = append(missingCustomers[s.CustomerID], s.SaleID)
		}
		if _, ok := productIDs[s.ProductID]; !ok {
			missingProducts[s.ProductID] = append(missingProducts[s.ProductID], s.SaleID)
		}
	}

	var issues []domain.Issue
	issues = append(issues, referentialIssues(domain.EntityCustomer, missingCustomers)...)
	issues = append(issues, referentialIssues(domain.EntityProduct, missingProducts)...)
	return issues
}

func referentialIssues(entity domain.EntityType, missing map[int64][]int64) []domain.Issue {
	refs := make([]int64, 0, len(missing))
	for id := range missing {
		refs = append(refs, id)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })

	issues := make([]domain.Issue, 0, len(refs))
	for _, ref := range refs {
		saleIDs := missing[ref]
		sort.Slice(saleIDs, func(i, j int) bool { return saleIDs[i] < saleIDs[j] })
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueReferential,
			Entity:   entity,
			IDs:      []int64{ref},
			Severity: domain.SeverityHigh,
			Detail:   fmt.Sprintf("%s %d not found; referenced by %d sales %v", entity, ref, len(saleIDs), saleIDs),
		})
	}
	return issues
}
