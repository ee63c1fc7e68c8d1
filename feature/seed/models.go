package seed

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRow is the seed shape of the customers table.
type CustomerRow struct {
	CustomerID   int64     `gorm:"column:customer_id;primaryKey"`
	Name         string    `gorm:"column:customer_name"`
	Email        string    `gorm:"column:email"`
	Phone        string    `gorm:"column:phone"`
	Address      string    `gorm:"column:address"`
	City         string    `gorm:"column:city"`
	State        string    `gorm:"column:state"`
	ZipCode      string    `gorm:"column:zip_code"`
	Country      string    `gorm:"column:country"`
	RegisteredAt time.Time `gorm:"column:registration_date"`
}

func (CustomerRow) TableName() string { return "customers" }

// ProductRow is the seed shape of the products table. Cost is nullable so
// that missing-cost rows can be planted.
type ProductRow struct {
	ProductID     int64               `gorm:"column:product_id;primaryKey"`
	Name          string              `gorm:"column:product_name"`
	Category      string              `gorm:"column:category"`
	Price         decimal.Decimal     `gorm:"column:price;type:decimal(10,2)"`
	Cost          decimal.NullDecimal `gorm:"column:cost;type:decimal(10,2)"`
	Supplier      string              `gorm:"column:supplier"`
	StockQuantity int64               `gorm:"column:stock_quantity"`
}

func (ProductRow) TableName() string { return "products" }

// SaleRow is the seed shape of the sales table. The identifier is a plain
// nullable column rather than a primary key so that null-identifier rows
// can be planted.
type SaleRow struct {
	SaleID        *int64          `gorm:"column:sale_id"`
	CustomerID    int64           `gorm:"column:customer_id"`
	ProductID     int64           `gorm:"column:product_id"`
	SaleDate      time.Time       `gorm:"column:sale_date"`
	Quantity      int64           `gorm:"column:quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2)"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)"`
	PaymentMethod string          `gorm:"column:payment_method"`
	Status        string          `gorm:"column:status"`
}

func (SaleRow) TableName() string { return "sales" }

// Dataset is the full set of rows destined for one source database.
type Dataset struct {
	Customers []CustomerRow
	Products  []ProductRow
	Sales     []SaleRow
}
