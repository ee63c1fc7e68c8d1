package enrich

import (
	"testing"

	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCohortByCustomer(t *testing.T) {
	customers := []domain.Customer{testCustomer(10), testCustomer(11), testCustomer(12)}
	products := []domain.Product{testProduct(20, "50.00", "30.00")}
	sales := []domain.Sale{
		testSale(1, 10, 20, 2, "50.00"),
		testSale(2, 10, 20, 1, "50.00"),
		testSale(3, 11, 20, 1, "50.00"),
	}

	enriched := Enrich(sales, customers, products, zap.NewNop())
	require.Len(t, enriched.Sales, 3)

	cohorts := CohortByCustomer(customers, enriched.Sales, zap.NewNop())
	require.Len(t, cohorts, 3)

	assert.Equal(t, int64(10), cohorts[0].CustomerID)
	assert.Equal(t, int64(2), cohorts[0].SaleCount)
	assert.True(t, cohorts[0].TotalRevenue.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, cohorts[0].TotalProfit.Equal(decimal.RequireFromString("60.00")))

	assert.Equal(t, int64(11), cohorts[1].CustomerID)
	assert.Equal(t, int64(1), cohorts[1].SaleCount)

	// Customer 12 has no sales and must still appear with zero aggregates.
	assert.Equal(t, int64(12), cohorts[2].CustomerID)
	assert.Equal(t, int64(0), cohorts[2].SaleCount)
	assert.True(t, cohorts[2].TotalRevenue.IsZero())
	assert.True(t, cohorts[2].TotalProfit.IsZero())
}

func TestCohortByCustomer_OrphanedSaleSurfaced(t *testing.T) {
	customers := []domain.Customer{testCustomer(10)}
	orphan := domain.EnrichedSale{Sale: domain.Sale{
		SaleID:      7,
		CustomerID:  99,
		TotalAmount: decimal.RequireFromString("10.00"),
	}}

	core, logs := observer.New(zap.ErrorLevel)
	cohorts := CohortByCustomer(customers, []domain.EnrichedSale{orphan}, zap.New(core))

	// The defective row contributes to no cohort, but never vanishes silently.
	require.Len(t, cohorts, 1)
	assert.Equal(t, int64(0), cohorts[0].SaleCount)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, int64(7), entries[0].ContextMap()["sale_id"])
	assert.Equal(t, int64(99), entries[0].ContextMap()["customer_id"])
}
