package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// Inserter loads a generated dataset into one source database, replacing
// whatever the tables held before.
type Inserter struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewInserter creates an inserter over an open connection.
func NewInserter(db *gorm.DB, log *zap.Logger) *Inserter {
	return &Inserter{db: db, log: log}
}

// Insert recreates the three entity tables and loads the dataset in batches.
func (i *Inserter) Insert(ctx context.Context, ds *Dataset) error {
	db := i.db.WithContext(ctx)

	models := []any{&SaleRow{}, &ProductRow{}, &CustomerRow{}}
	for _, m := range models {
		if db.Migrator().HasTable(m) {
			if err := db.Migrator().DropTable(m); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(&CustomerRow{}, &ProductRow{}, &SaleRow{}); err != nil {
		return fmt.Errorf("failed to migrate seed tables: %w", err)
	}

	if err := db.CreateInBatches(ds.Customers, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert customers: %w", err)
	}
	if err := db.CreateInBatches(ds.Products, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	if err := db.CreateInBatches(ds.Sales, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert sales: %w", err)
	}

	i.log.Info("Seeded source",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("products", len(ds.Products)),
		zap.Int("sales", len(ds.Sales)))
	return nil
}
