package enrich

import (
	"testing"
	"time"

	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCustomer(id int64) domain.Customer {
	return domain.Customer{CustomerID: id, Name: "Jane Roe", Email: "jane@roe.com", City: "Austin", State: "TX", Country: "USA"}
}

func testProduct(id int64, price, cost string) domain.Product {
	p := domain.Product{
		ProductID: id,
		Name:      "Desk Lamp",
		Category:  "Electronics",
		Price:     decimal.RequireFromString(price),
	}
	if cost != "" {
		p.Cost = decimal.NullDecimal{Decimal: decimal.RequireFromString(cost), Valid: true}
	}
	return p
}

func testSale(id, customerID, productID, quantity int64, unitPrice string) domain.Sale {
	return domain.Sale{
		SaleID:      id,
		CustomerID:  customerID,
		ProductID:   productID,
		SaleDate:    time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
		Quantity:    quantity,
		UnitPrice:   decimal.RequireFromString(unitPrice),
		TotalAmount: decimal.RequireFromString(unitPrice).Mul(decimal.NewFromInt(quantity)),
		Status:      domain.StatusCompleted,
	}
}

func TestEnrich_JoinsAndComputesMetrics(t *testing.T) {
	res := Enrich(
		[]domain.Sale{testSale(1, 10, 20, 2, "50.00")},
		[]domain.Customer{testCustomer(10)},
		[]domain.Product{testProduct(20, "50.00", "30.00")},
		zap.NewNop())

	require.Len(t, res.Sales, 1)
	require.Empty(t, res.Violations)

	row := res.Sales[0]
	assert.Equal(t, "Jane Roe", row.CustomerName)
	assert.Equal(t, "Desk Lamp", row.ProductName)
	assert.True(t, row.Profit.Equal(decimal.RequireFromString("40.00")), "profit = %s", row.Profit)
	require.True(t, row.MarginPercent.Valid)
	assert.True(t, row.MarginPercent.Decimal.Equal(decimal.RequireFromString("40.00")), "margin = %s", row.MarginPercent.Decimal)
}

func TestEnrich_BrokenReferences(t *testing.T) {
	t.Run("missing customer excludes sale and reports violation", func(t *testing.T) {
		res := Enrich(
			[]domain.Sale{testSale(1, 99, 20, 1, "10.00")},
			[]domain.Customer{testCustomer(10)},
			[]domain.Product{testProduct(20, "10.00", "5.00")},
			zap.NewNop())

		assert.Empty(t, res.Sales)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, domain.ReferenceViolation{SaleID: 1, Entity: domain.EntityCustomer, RefID: 99}, res.Violations[0])
	})

	t.Run("both references broken yields two violations for one sale", func(t *testing.T) {
		res := Enrich(
			[]domain.Sale{testSale(2, 99, 88, 1, "10.00")},
			[]domain.Customer{testCustomer(10)},
			[]domain.Product{testProduct(20, "10.00", "5.00")},
			zap.NewNop())

		assert.Empty(t, res.Sales)
		require.Len(t, res.Violations, 2)
		assert.Equal(t, domain.EntityCustomer, res.Violations[0].Entity)
		assert.Equal(t, domain.EntityProduct, res.Violations[1].Entity)
	})
}

func TestMetrics(t *testing.T) {
	t.Run("negative margin computed as-is", func(t *testing.T) {
		profit, margin := Metrics(
			decimal.RequireFromString("10.00"),
			decimal.NullDecimal{Decimal: decimal.RequireFromString("15.00"), Valid: true},
			1)
		assert.True(t, profit.Equal(decimal.RequireFromString("-5.00")))
		require.True(t, margin.Valid)
		assert.True(t, margin.Decimal.Equal(decimal.RequireFromString("-50.00")))
	})

	t.Run("zero unit price leaves margin null", func(t *testing.T) {
		profit, margin := Metrics(decimal.Zero, decimal.NullDecimal{}, 3)
		assert.True(t, profit.IsZero())
		assert.False(t, margin.Valid)
	})

	t.Run("null cost contributes zero to profit", func(t *testing.T) {
		profit, margin := Metrics(decimal.RequireFromString("20.00"), decimal.NullDecimal{}, 2)
		assert.True(t, profit.Equal(decimal.RequireFromString("40.00")))
		require.True(t, margin.Valid)
		assert.True(t, margin.Decimal.Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("margin rounded to two decimals", func(t *testing.T) {
		_, margin := Metrics(
			decimal.RequireFromString("3.00"),
			decimal.NullDecimal{Decimal: decimal.RequireFromString("1.00"), Valid: true},
			1)
		require.True(t, margin.Valid)
		assert.Equal(t, "66.67", margin.Decimal.StringFixed(2))
	})
}

func TestStandardizeCustomer(t *testing.T) {
	c := StandardizeCustomer(domain.Customer{
		CustomerID: 1,
		Name:       "  john SMITH ",
		Email:      " John.Smith@Example.COM ",
		City:       " Boston ",
		State:      "ma",
		Country:    " USA",
	})

	assert.Equal(t, "John Smith", c.Name)
	assert.Equal(t, "john.smith@example.com", c.Email)
	assert.Equal(t, "Boston", c.City)
	assert.Equal(t, "MA", c.State)
	assert.Equal(t, "USA", c.Country)
}

func TestStandardizeProduct(t *testing.T) {
	p := StandardizeProduct(domain.Product{
		ProductID: 1,
		Name:      " Desk Lamp ",
		Category:  "electronics",
		Price:     decimal.RequireFromString("19.999"),
		Cost:      decimal.NullDecimal{Decimal: decimal.RequireFromString("9.995"), Valid: true},
	})

	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, "Electronics", p.Category)
	assert.Equal(t, "20.00", p.Price.StringFixed(2))
	assert.Equal(t, "10.00", p.Cost.Decimal.StringFixed(2))
}

func TestNormalizeDate_PinsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2024, 3, 10, 7, 0, 0, 0, loc)
	out := NormalizeDate(in)
	assert.Equal(t, time.UTC, out.Location())
	assert.True(t, in.Equal(out))
}
