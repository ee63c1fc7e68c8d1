package merge

import "sales-reconciler/core/domain"

// Default values applied to missing optional fields. The identifier is the
// only field whose absence drops a record; everything else defaults.
const (
	DefaultEmail    = "unknown@domain.com"
	DefaultPhone    = "000-000-0000"
	DefaultState    = "UNKNOWN"
	DefaultCategory = "Uncategorized"
)

// NormalizeCustomer applies the customer null policy.
func NormalizeCustomer(c domain.Customer) domain.Customer {
	if c.Email == "" {
		c.Email = DefaultEmail
	}
	if c.Phone == "" {
		c.Phone = DefaultPhone
	}
	if c.State == "" {
		c.State = DefaultState
	}
	return c
}

// NormalizeProduct applies the product null policy.
func NormalizeProduct(p domain.Product) domain.Product {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return p
}

// NormalizeSale applies the sale null policy. Sales carry no defaultable
// fields today; missing references surface later as referential violations.
func NormalizeSale(s domain.Sale) domain.Sale {
	return s
}
