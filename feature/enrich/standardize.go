package enrich

import (
	"strings"
	"time"

	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pure canonicalization functions. Each maps one raw-typed field to its
// canonical form; none of them coerce across types.

// TitleCase trims and title-cases a free-form name field.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeDate pins a timestamp to UTC, the single calendar representation
// used across the final dataset.
func NormalizeDate(t time.Time) time.Time {
	return t.UTC()
}

// NormalizeMoney rounds a monetary amount to the fixed two-decimal precision
// of the final dataset.
func NormalizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// StandardizeCustomer returns a canonicalized copy of a customer record.
func StandardizeCustomer(c domain.Customer) domain.Customer {
	c.Name = TitleCase(c.Name)
	c.Email = NormalizeEmail(c.Email)
	c.City = strings.TrimSpace(c.City)
	c.State = strings.ToUpper(strings.TrimSpace(c.State))
	c.Country = strings.TrimSpace(c.Country)
	c.RegisteredAt = NormalizeDate(c.RegisteredAt)
	return c
}

// StandardizeCustomers canonicalizes a merged customer set into a new slice.
func StandardizeCustomers(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, len(customers))
	for i, c := range customers {
		out[i] = StandardizeCustomer(c)
	}
	return out
}

// StandardizeProduct returns a canonicalized copy of a product record.
func StandardizeProduct(p domain.Product) domain.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = TitleCase(p.Category)
	p.Price = NormalizeMoney(p.Price)
	if p.Cost.Valid {
		p.Cost.Decimal = NormalizeMoney(p.Cost.Decimal)
	}
	return p
}

// StandardizeProducts canonicalizes a merged product set into a new slice.
func StandardizeProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = StandardizeProduct(p)
	}
	return out
}
