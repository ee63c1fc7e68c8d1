package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sales-reconciler/core/database"
	"sales-reconciler/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tableFor maps an entity type to its source table name. Both sources use
// the same table names.
var tableFor = map[domain.EntityType]string{
	domain.EntityCustomer: "customers",
	domain.EntityProduct:  "products",
	domain.EntitySale:     "sales",
}

// expectedColumns is the column set each entity table must expose. Extra
// columns in an evolving source are tolerated (and logged); missing ones are
// a schema mismatch.
var expectedColumns = map[domain.EntityType][]string{
	domain.EntityCustomer: {
		"customer_id", "customer_name", "email", "phone", "address",
		"city", "state", "zip_code", "country", "registration_date",
	},
	domain.EntityProduct: {
		"product_id", "product_name", "category", "price", "cost",
		"supplier", "stock_quantity",
	},
	domain.EntitySale: {
		"sale_id", "customer_id", "product_id", "sale_date", "quantity",
		"unit_price", "total_amount", "payment_method", "status",
	},
}

// Source reads bounded batches of typed records from one named source.
// It performs no transformation: overlaps between sources are the merge
// stage's job.
type Source struct {
	name string
	db   *gorm.DB
	log  *zap.Logger
}

// NewSource creates a reader for one named source. The connection handle is
// passed in explicitly; the reader owns no global state.
func NewSource(name string, db *gorm.DB, log *zap.Logger) *Source {
	return &Source{name: name, db: db, log: log.With(zap.String("source", name))}
}

// Name returns the logical source name used in batch tags.
func (s *Source) Name() string { return s.name }

// Snapshot is the full bounded read of one source: one batch per entity type.
type Snapshot struct {
	Customers domain.Batch[domain.Customer]
	Products  domain.Batch[domain.Product]
	Sales     domain.Batch[domain.Sale]
}

// Read extracts all three entity batches from the source.
func (s *Source) Read(ctx context.Context) (*Snapshot, error) {
	customers, err := s.Customers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.Sales(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Customers: customers, Products: products, Sales: sales}, nil
}

// Customers reads the full customer batch.
func (s *Source) Customers(ctx context.Context) (domain.Batch[domain.Customer], error) {
	batch := domain.Batch[domain.Customer]{Source: s.name, Entity: domain.EntityCustomer}
	if err := s.checkSchema(domain.EntityCustomer); err != nil {
		return batch, err
	}

	var records []domain.Customer
	err := s.db.WithContext(ctx).
		Raw("SELECT customer_id, customer_name, email, phone, address, city, state, zip_code, country, registration_date FROM customers").
		Scan(&records).Error
	if err != nil {
		return batch, &SourceError{Source: s.name, Entity: domain.EntityCustomer, Kind: ErrSourceUnavailable, Err: err}
	}

	batch.Records = records
	s.log.Info("Extracted customers", zap.Int("count", len(records)))
	return batch, nil
}

// Products reads the full product batch.
func (s *Source) Products(ctx context.Context) (domain.Batch[domain.Product], error) {
	batch := domain.Batch[domain.Product]{Source: s.name, Entity: domain.EntityProduct}
	if err := s.checkSchema(domain.EntityProduct); err != nil {
		return batch, err
	}

	var records []domain.Product
	err := s.db.WithContext(ctx).
		Raw("SELECT product_id, product_name, category, price, cost, supplier, stock_quantity FROM products").
		Scan(&records).Error
	if err != nil {
		return batch, &SourceError{Source: s.name, Entity: domain.EntityProduct, Kind: ErrSourceUnavailable, Err: err}
	}

	batch.Records = records
	s.log.Info("Extracted products", zap.Int("count", len(records)))
	return batch, nil
}

// Sales reads the full sales batch.
func (s *Source) Sales(ctx context.Context) (domain.Batch[domain.Sale], error) {
	batch := domain.Batch[domain.Sale]{Source: s.name, Entity: domain.EntitySale}
	if err := s.checkSchema(domain.EntitySale); err != nil {
		return batch, err
	}

	var records []domain.Sale
	err := s.db.WithContext(ctx).
		Raw("SELECT sale_id, customer_id, product_id, sale_date, quantity, unit_price, total_amount, payment_method, status FROM sales").
		Scan(&records).Error
	if err != nil {
		return batch, &SourceError{Source: s.name, Entity: domain.EntitySale, Kind: ErrSourceUnavailable, Err: err}
	}

	batch.Records = records
	s.log.Info("Extracted sales", zap.Int("count", len(records)))
	return batch, nil
}

// checkSchema verifies the live column set of the entity's table against the
// expected shape before any rows are scanned.
func (s *Source) checkSchema(entity domain.EntityType) error {
	table := tableFor[entity]

	columns, err := database.GetTableColumns(s.db, table)
	if err != nil {
		return &SourceError{Source: s.name, Entity: entity, Kind: ErrSourceUnavailable, Err: err}
	}

	actual := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		actual[col.Field] = struct{}{}
	}

	var missing []string
	for _, want := range expectedColumns[entity] {
		if _, ok := actual[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SourceError{
			Source: s.name,
			Entity: entity,
			Kind:   ErrSchemaMismatch,
			Err:    fmt.Errorf("table %s missing columns: %s", table, strings.Join(missing, ", ")),
		}
	}

	if extra := len(actual) - len(expectedColumns[entity]); extra > 0 {
		s.log.Warn("Source table has extra columns",
			zap.String("table", table), zap.Int("extra", extra))
	}

	return nil
}
