package enrich

import (
	"sort"

	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CustomerCohort is one row of the left-join variant: per-customer sale
// aggregates where customers with zero sales still appear with zero values.
// Downstream ranking and cohort views consume this shape.
type CustomerCohort struct {
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Country      string          `json:"country"`
	SaleCount    int64           `json:"sale_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// CohortByCustomer left-joins the enriched sales back onto the full customer
// set. Every customer appears exactly once, sorted by identifier.
func CohortByCustomer(customers []domain.Customer, sales []domain.EnrichedSale, log *zap.Logger) []CustomerCohort {
	byID := make(map[int64]*CustomerCohort, len(customers))
	out := make([]CustomerCohort, 0, len(customers))

	for _, c := range customers {
		byID[c.CustomerID] = &CustomerCohort{
			CustomerID:   c.CustomerID,
			CustomerName: c.Name,
			City:         c.City,
			State:        c.State,
			Country:      c.Country,
			TotalRevenue: decimal.Zero,
			TotalProfit:  decimal.Zero,
		}
	}

	for _, s := range sales {
		row, ok := byID[s.CustomerID]
		if !ok {
			// Enriched sales are a strict function of the merged sets, so a
			// customer absent here is an orphaned record, a pipeline defect.
			log.Error("Enriched sale references a customer absent from the cohort set",
				zap.Int64("sale_id", s.SaleID),
				zap.Int64("customer_id", s.CustomerID))
			continue
		}
		row.SaleCount++
		row.TotalRevenue = row.TotalRevenue.Add(s.TotalAmount)
		row.TotalProfit = row.TotalProfit.Add(s.Profit)
	}

	for _, row := range byID {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}
