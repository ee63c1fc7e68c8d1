package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType identifies one of the three record families handled by the pipeline.
type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntityProduct  EntityType = "product"
	EntitySale     EntityType = "sale"
)

// SaleStatus is the lifecycle state of a sale as recorded by the source systems.
type SaleStatus string

const (
	StatusCompleted SaleStatus = "Completed"
	StatusPending   SaleStatus = "Pending"
	StatusCancelled SaleStatus = "Cancelled"
	StatusRefunded  SaleStatus = "Refunded"
)

// Record is implemented by every entity type that carries a natural identifier.
// A zero key means the source row had a missing or unreadable identifier.
type Record interface {
	Key() int64
}

// Batch is a bounded set of records read from a single named source.
// Batches are immutable once produced; downstream stages build new slices.
type Batch[T Record] struct {
	// Source is the name of the source system that supplied the records.
	Source string

	// Entity is the record family contained in this batch.
	Entity EntityType

	// Records is the full bounded batch, in source order.
	Records []T
}

// Customer is a customer master record.
type Customer struct {
	CustomerID   int64     `json:"customer_id"`
	Name         string    `json:"customer_name" gorm:"column:customer_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Country      string    `json:"country"`
	RegisteredAt time.Time `json:"registration_date" gorm:"column:registration_date"`
}

func (c Customer) Key() int64 { return c.CustomerID }

// Product is a product master record. Cost may be absent in either source,
// and cost <= price is not guaranteed; the enrich stage computes whatever
// margin the data implies, negative included.
type Product struct {
	ProductID     int64               `json:"product_id"`
	Name          string              `json:"product_name" gorm:"column:product_name"`
	Category      string              `json:"category"`
	Price         decimal.Decimal     `json:"price"`
	Cost          decimal.NullDecimal `json:"cost"`
	Supplier      string              `json:"supplier"`
	StockQuantity int64               `json:"stock_quantity"`
}

func (p Product) Key() int64 { return p.ProductID }

// Sale is a single sales transaction referencing a customer and a product.
type Sale struct {
	SaleID        int64           `json:"sale_id"`
	CustomerID    int64           `json:"customer_id"`
	ProductID     int64           `json:"product_id"`
	SaleDate      time.Time       `json:"sale_date"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        SaleStatus      `json:"status"`
}

func (s Sale) Key() int64 { return s.SaleID }

// EnrichedSale is a Sale joined with its customer and product plus derived
// metrics. MarginPercent is null when the unit price is zero, because the
// margin is undefined there rather than an error.
type EnrichedSale struct {
	Sale

	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`

	ProductName string              `json:"product_name"`
	Category    string              `json:"category"`
	Price       decimal.Decimal     `json:"price"`
	Cost        decimal.NullDecimal `json:"cost"`

	Profit        decimal.Decimal     `json:"profit"`
	MarginPercent decimal.NullDecimal `json:"margin_percent"`
}

// ReferenceViolation records a sale whose customer or product reference did
// not resolve against the merged dimension sets.
type ReferenceViolation struct {
	// SaleID is the referencing sale.
	SaleID int64 `json:"sale_id"`

	// Entity is the referenced family (customer or product).
	Entity EntityType `json:"entity_type"`

	// RefID is the identifier that failed to resolve.
	RefID int64 `json:"identifier"`
}
