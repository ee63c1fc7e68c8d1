package seed

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Params controls the size and flaw rate of the generated data. The same
// seed always yields the same two datasets.
type Params struct {
	Customers int
	Products  int
	Sales     int
	Seed      uint64

	// OverlapRatio is the fraction of each entity pool written to both
	// sources, producing the cross-source duplicates the merge stage is
	// built to resolve.
	OverlapRatio float64

	// NullIDRatio is the fraction of secondary-source sales planted with a
	// null identifier.
	NullIDRatio float64

	// BrokenRefRatio is the fraction of secondary-source sales planted with
	// a customer or product reference that resolves nowhere.
	BrokenRefRatio float64

	// MissingCostRatio is the fraction of products planted without a cost.
	MissingCostRatio float64
}

// DefaultParams mirrors the flaw rates observed in real source feeds:
// small but never zero.
func DefaultParams() Params {
	return Params{
		Customers:        200,
		Products:         80,
		Sales:            1000,
		Seed:             1,
		OverlapRatio:     0.2,
		NullIDRatio:      0.02,
		BrokenRefRatio:   0.03,
		MissingCostRatio: 0.05,
	}
}

var (
	categories     = []string{"Electronics", "Furniture", "Clothing", "Toys", "Groceries", "Sports"}
	paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Cash", "Bank Transfer"}
	saleStatuses   = []string{"Completed", "Completed", "Completed", "Pending", "Cancelled", "Refunded"}
)

// Generator produces two overlapping source datasets from a single faked
// entity pool.
type Generator struct {
	params Params
	faker  *gofakeit.Faker
	log    *zap.Logger
}

// NewGenerator creates a deterministic generator for the given parameters.
func NewGenerator(params Params, log *zap.Logger) *Generator {
	return &Generator{
		params: params,
		faker:  gofakeit.New(params.Seed),
		log:    log,
	}
}

// Generate builds the primary and secondary datasets. Identifiers are
// assigned sequentially per entity, the overlap region is shared verbatim
// between both datasets, and all planted flaws land in the secondary one.
func (g *Generator) Generate() (primary, secondary *Dataset) {
	customers := g.customers()
	products := g.products()
	sales := g.sales(customers, products)

	primary = &Dataset{}
	secondary = &Dataset{}
	primary.Customers, secondary.Customers = split(customers, g.params.OverlapRatio)
	primary.Products, secondary.Products = split(products, g.params.OverlapRatio)
	primary.Sales, secondary.Sales = split(sales, g.params.OverlapRatio)

	g.plantFlaws(secondary)

	g.log.Info("Generated datasets",
		zap.Int("customers", len(customers)),
		zap.Int("products", len(products)),
		zap.Int("sales", len(sales)),
		zap.Float64("overlap_ratio", g.params.OverlapRatio))
	return primary, secondary
}

func (g *Generator) customers() []CustomerRow {
	rows := make([]CustomerRow, g.params.Customers)
	for i := range rows {
		rows[i] = CustomerRow{
			CustomerID:   int64(i + 1),
			Name:         g.faker.Name(),
			Email:        g.faker.Email(),
			Phone:        g.faker.Phone(),
			Address:      g.faker.Street(),
			City:         g.faker.City(),
			State:        g.faker.StateAbr(),
			ZipCode:      g.faker.Zip(),
			Country:      "USA",
			RegisteredAt: g.faker.DateRange(
				time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
		}
	}
	return rows
}

func (g *Generator) products() []ProductRow {
	rows := make([]ProductRow, g.params.Products)
	for i := range rows {
		price := decimal.NewFromFloat(g.faker.Price(5, 500)).Round(2)
		cost := decimal.NullDecimal{
			Decimal: price.Mul(decimal.NewFromFloat(g.faker.Float64Range(0.4, 0.9))).Round(2),
			Valid:   true,
		}
		if g.faker.Float64Range(0, 1) < g.params.MissingCostRatio {
			cost = decimal.NullDecimal{}
		}
		rows[i] = ProductRow{
			ProductID:     int64(i + 1),
			Name:          g.faker.ProductName(),
			Category:      g.faker.RandomString(categories),
			Price:         price,
			Cost:          cost,
			Supplier:      g.faker.Company(),
			StockQuantity: int64(g.faker.Number(0, 1000)),
		}
	}
	return rows
}

func (g *Generator) sales(customers []CustomerRow, products []ProductRow) []SaleRow {
	rows := make([]SaleRow, g.params.Sales)
	for i := range rows {
		id := int64(i + 1)
		product := products[g.faker.Number(0, len(products)-1)]
		quantity := int64(g.faker.Number(1, 10))
		rows[i] = SaleRow{
			SaleID:     &id,
			CustomerID: customers[g.faker.Number(0, len(customers)-1)].CustomerID,
			ProductID:  product.ProductID,
			SaleDate: g.faker.DateRange(
				time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
			Quantity:      quantity,
			UnitPrice:     product.Price,
			TotalAmount:   product.Price.Mul(decimal.NewFromInt(quantity)).Round(2),
			PaymentMethod: g.faker.RandomString(paymentMethods),
			Status:        g.faker.RandomString(saleStatuses),
		}
	}
	return rows
}

// plantFlaws injects the secondary dataset's anomalies: null sale
// identifiers and dangling references.
func (g *Generator) plantFlaws(ds *Dataset) {
	nulls, broken := 0, 0
	for i := range ds.Sales {
		if g.faker.Float64Range(0, 1) < g.params.NullIDRatio {
			ds.Sales[i].SaleID = nil
			nulls++
		}
		if g.faker.Float64Range(0, 1) < g.params.BrokenRefRatio {
			if g.faker.Bool() {
				ds.Sales[i].CustomerID = int64(g.params.Customers + g.faker.Number(1000, 9999))
			} else {
				ds.Sales[i].ProductID = int64(g.params.Products + g.faker.Number(1000, 9999))
			}
			broken++
		}
	}
	g.log.Info("Planted flaws", zap.Int("null_ids", nulls), zap.Int("broken_refs", broken))
}

// split cuts a pool into two datasets sharing an overlap region in the
// middle. Each side keeps slightly more than half of the pool.
func split[T any](pool []T, overlap float64) (primary, secondary []T) {
	n := len(pool)
	half := n / 2
	shared := int(float64(n) * overlap / 2)

	primaryEnd := half + shared
	secondaryStart := half - shared
	if primaryEnd > n {
		primaryEnd = n
	}
	if secondaryStart < 0 {
		secondaryStart = 0
	}

	primary = append(primary, pool[:primaryEnd]...)
	secondary = append(secondary, pool[secondaryStart:]...)
	return primary, secondary
}
