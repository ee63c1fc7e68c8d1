package enrich

import (
	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// Result is the inner-join enrichment output: the enriched sales that
// resolved both references, and a violation entry for every reference that
// did not. Nothing is silently dropped.
type Result struct {
	Sales      []domain.EnrichedSale
	Violations []domain.ReferenceViolation
}

// Enrich joins each merged sale to its customer and product by identifier
// and computes the derived metrics.
//
// Sales whose customer or product cannot be resolved are excluded from the
// enriched set and reported as violations; a sale with both references
// broken yields one violation per reference. The enriched set is a strict
// function of the merged inputs: no identifiers are invented here.
func Enrich(sales []domain.Sale, customers []domain.Customer, products []domain.Product, log *zap.Logger) Result {
	customerByID := make(map[int64]domain.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.CustomerID] = c
	}
	productByID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ProductID] = p
	}

	res := Result{Sales: make([]domain.EnrichedSale, 0, len(sales))}

	for _, sale := range sales {
		customer, haveCustomer := customerByID[sale.CustomerID]
		product, haveProduct := productByID[sale.ProductID]

		if !haveCustomer {
			res.Violations = append(res.Violations, domain.ReferenceViolation{
				SaleID: sale.SaleID, Entity: domain.EntityCustomer, RefID: sale.CustomerID,
			})
		}
		if !haveProduct {
			res.Violations = append(res.Violations, domain.ReferenceViolation{
				SaleID: sale.SaleID, Entity: domain.EntityProduct, RefID: sale.ProductID,
			})
		}
		if !haveCustomer || !haveProduct {
			continue
		}

		res.Sales = append(res.Sales, enrichOne(sale, customer, product))
	}

	if n := len(res.Violations); n > 0 {
		log.Warn("Sales with unresolved references excluded from enriched set",
			zap.Int("violations", n))
	}
	log.Info("Enrichment complete",
		zap.Int("input", len(sales)), zap.Int("enriched", len(res.Sales)))
	return res
}

// enrichOne builds a single enriched row. The sale's date and monetary
// fields are canonicalized on the copy; the inputs stay untouched.
func enrichOne(sale domain.Sale, customer domain.Customer, product domain.Product) domain.EnrichedSale {
	sale.SaleDate = NormalizeDate(sale.SaleDate)
	sale.UnitPrice = NormalizeMoney(sale.UnitPrice)
	sale.TotalAmount = NormalizeMoney(sale.TotalAmount)

	profit, margin := Metrics(sale.UnitPrice, product.Cost, sale.Quantity)

	return domain.EnrichedSale{
		Sale: sale,

		CustomerName: customer.Name,
		Email:        customer.Email,
		City:         customer.City,
		State:        customer.State,
		Country:      customer.Country,

		ProductName: product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Cost:        product.Cost,

		Profit:        profit,
		MarginPercent: margin,
	}
}

// Metrics computes profit = (unit_price - cost) * quantity and
// margin_percent = profit / (unit_price * quantity) * 100, rounded to two
// decimal places.
//
// A zero unit price makes the margin undefined, so it is returned null
// rather than computed or raised. A null cost contributes zero to the
// profit formula; the null itself stays visible in the cost column.
func Metrics(unitPrice decimal.Decimal, cost decimal.NullDecimal, quantity int64) (decimal.Decimal, decimal.NullDecimal) {
	c := decimal.Zero
	if cost.Valid {
		c = cost.Decimal
	}
	qty := decimal.NewFromInt(quantity)

	profit := unitPrice.Sub(c).Mul(qty).Round(2)

	revenue := unitPrice.Mul(qty)
	if revenue.IsZero() {
		return profit, decimal.NullDecimal{}
	}

	margin := profit.Div(revenue).Mul(hundred).Round(2)
	return profit, decimal.NullDecimal{Decimal: margin, Valid: true}
}
