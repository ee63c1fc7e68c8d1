package checks

import (
	"testing"
	"time"

	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicates(t *testing.T) {
	t.Run("unique set passes", func(t *testing.T) {
		assert.Empty(t, Duplicates(domain.EntityCustomer, []int64{1, 2, 3}))
	})

	t.Run("repeated identifiers flagged critical", func(t *testing.T) {
		issues := Duplicates(domain.EntitySale, []int64{5, 3, 5, 3, 5})
		require.Len(t, issues, 2)
		assert.Equal(t, []int64{3}, issues[0].IDs)
		assert.Equal(t, []int64{5}, issues[1].IDs)
		for _, issue := range issues {
			assert.Equal(t, domain.IssueDuplicate, issue.Kind)
			assert.Equal(t, domain.SeverityCritical, issue.Severity)
		}
		assert.Contains(t, issues[1].Detail, "appears 3 times")
	})
}

func TestJoinQuality(t *testing.T) {
	t.Run("ratio at threshold passes", func(t *testing.T) {
		assert.Empty(t, JoinQuality(95, 100, 0.95))
	})

	t.Run("ratio below threshold flagged", func(t *testing.T) {
		issues := JoinQuality(90, 100, 0.95)
		require.Len(t, issues, 1)
		assert.Equal(t, domain.IssueJoinQuality, issues[0].Kind)
		assert.Equal(t, domain.SeverityHigh, issues[0].Severity)
		assert.Contains(t, issues[0].Detail, "90 of 100")
	})

	t.Run("empty raw set passes", func(t *testing.T) {
		assert.Empty(t, JoinQuality(0, 0, 0.95))
	})
}

func TestNulls(t *testing.T) {
	good := domain.EnrichedSale{
		Sale: domain.Sale{
			SaleID:        1,
			SaleDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "Cash",
			Status:        domain.StatusCompleted,
		},
		CustomerName: "Jane Roe",
		ProductName:  "Desk Lamp",
	}

	t.Run("complete row passes", func(t *testing.T) {
		assert.Empty(t, Nulls([]domain.EnrichedSale{good}))
	})

	t.Run("missing required fields flagged per row", func(t *testing.T) {
		bad := good
		bad.SaleID = 2
		bad.CustomerName = ""
		bad.PaymentMethod = ""

		issues := Nulls([]domain.EnrichedSale{good, bad})
		require.Len(t, issues, 1)
		assert.Equal(t, []int64{2}, issues[0].IDs)
		assert.Contains(t, issues[0].Detail, "customer_name")
		assert.Contains(t, issues[0].Detail, "payment_method")
	})
}

func TestReferential(t *testing.T) {
	customers := []domain.Customer{{CustomerID: 10}}
	products := []domain.Product{{ProductID: 20}}
	sales := []domain.Sale{
		{SaleID: 1, CustomerID: 10, ProductID: 20},
		{SaleID: 2, CustomerID: 99, ProductID: 20},
		{SaleID: 3, CustomerID: 99, ProductID: 20},
		{SaleID: 4, CustomerID: 10, ProductID: 88},
	}

	issues := Referential(sales, customers, products)
	require.Len(t, issues, 2)

	assert.Equal(t, domain.EntityCustomer, issues[0].Entity)
	assert.Equal(t, []int64{99}, issues[0].IDs)
	assert.Contains(t, issues[0].Detail, "referenced by 2 sales [2 3]")

	assert.Equal(t, domain.EntityProduct, issues[1].Entity)
	assert.Equal(t, []int64{88}, issues[1].IDs)
}

func TestSchema(t *testing.T) {
	t.Run("current record shapes match their contracts", func(t *testing.T) {
		for entity, sample := range map[domain.EntityType]any{
			domain.EntityCustomer: domain.Customer{},
			domain.EntityProduct:  domain.Product{},
			domain.EntitySale:     domain.Sale{},
		} {
			issues, err := Schema(entity, sample)
			require.NoError(t, err)
			assert.Empty(t, issues, "entity %s diverged from contract", entity)
		}
	})

	t.Run("diverged shape flagged", func(t *testing.T) {
		type driftedProduct struct {
			ProductID     int64
			Name          string
			Category      string
			Price         decimal.Decimal
			Cost          decimal.NullDecimal
			StockQuantity int64
			Warehouse     string
		}
		issues, err := Schema(domain.EntityProduct, driftedProduct{})
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, domain.IssueSchema, issues[0].Kind)
		assert.Contains(t, issues[0].Detail, "missing field Supplier")
		assert.Contains(t, issues[0].Detail, "undeclared field Warehouse")
	})

	t.Run("unknown entity cannot run", func(t *testing.T) {
		_, err := Schema(domain.EntityType("warehouse"), struct{}{})
		assert.Error(t, err)
	})
}
