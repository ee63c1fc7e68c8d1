package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sales-reconciler/core/domain"
	"sales-reconciler/core/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Artifact file names. The column order of the dataset is part of the
// downstream contract and must stay stable.
const (
	DatasetFile        = "sales_enriched.csv"
	ValidationFile     = "validation_report.json"
	ReconciliationFile = "reconciliation_report.json"
)

// datasetColumns is the stable column order of the flat output dataset.
var datasetColumns = []string{
	"sale_id", "customer_id", "product_id", "sale_date", "quantity",
	"unit_price", "total_amount", "payment_method", "status",
	"customer_name", "email", "city", "state", "country",
	"product_name", "category", "price", "cost",
	"profit", "margin_percent",
}

const dateLayout = "2006-01-02 15:04:05"

// ValidationReport is the serialized form of the ordered issue list.
type ValidationReport struct {
	IssueCount int            `json:"issue_count"`
	Issues     []domain.Issue `json:"issues"`
}

// Artifacts holds the paths of the written run artifacts.
type Artifacts struct {
	DatasetPath        string
	ValidationPath     string
	ReconciliationPath string
}

// Reporter serializes the final dataset and both reports to the system
// boundary. It holds no business logic; its inputs are immutable by the time
// they arrive here.
type Reporter struct {
	outputDir string
	client    storage.Client
	bucket    string
	log       *zap.Logger
}

// New creates a reporter writing into the given directory.
func New(outputDir string, log *zap.Logger) *Reporter {
	return &Reporter{outputDir: outputDir, log: log}
}

// WithUpload configures the reporter to also publish artifacts to object
// storage after writing them locally.
func (r *Reporter) WithUpload(client storage.Client, bucket string) *Reporter {
	r.client = client
	r.bucket = bucket
	return r
}

// Write serializes the dataset and both reports. Re-running over unchanged
// inputs produces byte-identical files. runID names the upload prefix only;
// it never leaks into file contents.
func (r *Reporter) Write(ctx context.Context, enriched []domain.EnrichedSale, issues []domain.Issue, recon *domain.ReconciliationReport, runID string) (*Artifacts, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	dataset, err := encodeDataset(enriched)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}

	validation, err := json.MarshalIndent(ValidationReport{IssueCount: len(issues), Issues: issues}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode validation report: %w", err)
	}

	reconciliation, err := json.MarshalIndent(recon, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode reconciliation report: %w", err)
	}

	arts := &Artifacts{
		DatasetPath:        filepath.Join(r.outputDir, DatasetFile),
		ValidationPath:     filepath.Join(r.outputDir, ValidationFile),
		ReconciliationPath: filepath.Join(r.outputDir, ReconciliationFile),
	}

	for path, data := range map[string][]byte{
		arts.DatasetPath:        dataset,
		arts.ValidationPath:     append(validation, '\n'),
		arts.ReconciliationPath: append(reconciliation, '\n'),
	} {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	r.log.Info("Artifacts written",
		zap.String("dir", r.outputDir),
		zap.Int("rows", len(enriched)),
		zap.Int("issues", len(issues)))

	if r.client != nil {
		if err := r.uploadAll(ctx, runID, arts); err != nil {
			return arts, err
		}
	}
	return arts, nil
}

// encodeDataset renders the enriched sales as CSV in the stable column order.
func encodeDataset(enriched []domain.EnrichedSale) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(datasetColumns); err != nil {
		return nil, err
	}
	for _, row := range enriched {
		record := []string{
			strconv.FormatInt(row.SaleID, 10),
			strconv.FormatInt(row.CustomerID, 10),
			strconv.FormatInt(row.ProductID, 10),
			row.SaleDate.Format(dateLayout),
			strconv.FormatInt(row.Quantity, 10),
			row.UnitPrice.StringFixed(2),
			row.TotalAmount.StringFixed(2),
			row.PaymentMethod,
			string(row.Status),
			row.CustomerName,
			row.Email,
			row.City,
			row.State,
			row.Country,
			row.ProductName,
			row.Category,
			row.Price.StringFixed(2),
			nullDecimalCell(row.Cost),
			row.Profit.StringFixed(2),
			nullDecimalCell(row.MarginPercent),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// nullDecimalCell renders a nullable decimal; undefined values become empty
// cells, never zeros.
func nullDecimalCell(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
