package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"sales-reconciler/core/domain"
	"sales-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleRows() []domain.EnrichedSale {
	return []domain.EnrichedSale{
		{
			Sale: domain.Sale{
				SaleID:        1,
				CustomerID:    10,
				ProductID:     20,
				SaleDate:      time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
				Quantity:      2,
				UnitPrice:     decimal.RequireFromString("50.00"),
				TotalAmount:   decimal.RequireFromString("100.00"),
				PaymentMethod: "Cash",
				Status:        domain.StatusCompleted,
			},
			CustomerName:  "Jane Roe",
			Email:         "jane@roe.com",
			City:          "Austin",
			State:         "TX",
			Country:       "USA",
			ProductName:   "Desk Lamp",
			Category:      "Electronics",
			Price:         decimal.RequireFromString("50.00"),
			Cost:          decimal.NullDecimal{Decimal: decimal.RequireFromString("30.00"), Valid: true},
			Profit:        decimal.RequireFromString("40.00"),
			MarginPercent: decimal.NullDecimal{Decimal: decimal.RequireFromString("40.00"), Valid: true},
		},
		{
			Sale: domain.Sale{
				SaleID:        2,
				CustomerID:    10,
				ProductID:     21,
				SaleDate:      time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
				Quantity:      1,
				PaymentMethod: "PayPal",
				Status:        domain.StatusPending,
			},
			CustomerName: "Jane Roe",
			ProductName:  "Giveaway Pen",
			// Zero unit price: margin undefined, cost unknown.
		},
	}
}

func emptyReconReport() *domain.ReconciliationReport {
	return &domain.ReconciliationReport{Entities: map[domain.EntityType]*domain.EntityReport{}}
}

func TestWrite_DatasetColumnOrderAndNullCells(t *testing.T) {
	dir := t.TempDir()
	reporter := New(dir, zap.NewNop())

	arts, err := reporter.Write(context.Background(), sampleRows(), nil, emptyReconReport(), "run-1")
	require.NoError(t, err)

	f, err := os.Open(arts.DatasetPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, datasetColumns, records[0])

	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "2024-03-10 14:30:00", first[3])
	assert.Equal(t, "40.00", first[18])
	assert.Equal(t, "40.00", first[19])

	second := records[2]
	assert.Equal(t, "", second[17], "unknown cost must be an empty cell, not zero")
	assert.Equal(t, "", second[19], "undefined margin must be an empty cell, not zero")
}

func TestWrite_Deterministic(t *testing.T) {
	dir := t.TempDir()
	reporter := New(dir, zap.NewNop())

	issues := []domain.Issue{{
		Kind:     domain.IssueDuplicate,
		Entity:   domain.EntityCustomer,
		IDs:      []int64{10},
		Sources:  []string{"mysql", "postgres"},
		Severity: domain.SeverityMedium,
		Detail:   "identifier 10 supplied by sources [mysql, postgres]; kept mysql",
	}}

	// Two runs with different run identifiers over unchanged inputs.
	_, err := reporter.Write(context.Background(), sampleRows(), issues, emptyReconReport(), "run-1")
	require.NoError(t, err)
	firstDataset, err := os.ReadFile(dir + "/" + DatasetFile)
	require.NoError(t, err)
	firstValidation, err := os.ReadFile(dir + "/" + ValidationFile)
	require.NoError(t, err)

	_, err = reporter.Write(context.Background(), sampleRows(), issues, emptyReconReport(), "run-2")
	require.NoError(t, err)
	secondDataset, err := os.ReadFile(dir + "/" + DatasetFile)
	require.NoError(t, err)
	secondValidation, err := os.ReadFile(dir + "/" + ValidationFile)
	require.NoError(t, err)

	assert.Equal(t, firstDataset, secondDataset)
	assert.Equal(t, firstValidation, secondValidation)
}

func TestWrite_ValidationReportShape(t *testing.T) {
	dir := t.TempDir()
	reporter := New(dir, zap.NewNop())

	issues := []domain.Issue{{
		Kind:     domain.IssueReferential,
		Entity:   domain.EntityProduct,
		IDs:      []int64{88},
		Severity: domain.SeverityHigh,
		Detail:   "product 88 not found; referenced by 1 sales [4]",
	}}

	arts, err := reporter.Write(context.Background(), nil, issues, emptyReconReport(), "run-1")
	require.NoError(t, err)

	data, err := os.ReadFile(arts.ValidationPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(1), decoded["issue_count"])

	// Severity serializes as its name, and nothing run-scoped leaks in.
	assert.Contains(t, string(data), `"severity": "high"`)
	assert.NotContains(t, string(data), "run-1")
}

func TestWrite_UploadsUnderRunPrefix(t *testing.T) {
	dir := t.TempDir()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "recon-reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "recon-reports", mock.Anything).Return(nil)
	for _, object := range []string{
		"run-9/" + DatasetFile,
		"run-9/" + ValidationFile,
		"run-9/" + ReconciliationFile,
	} {
		client.On("PutObject", mock.Anything, "recon-reports", object,
			mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	}

	reporter := New(dir, zap.NewNop()).WithUpload(client, "recon-reports")
	_, err := reporter.Write(context.Background(), sampleRows(), nil, emptyReconReport(), "run-9")
	require.NoError(t, err)

	client.AssertExpectations(t)
}

func TestNullDecimalCell(t *testing.T) {
	assert.Equal(t, "", nullDecimalCell(decimal.NullDecimal{}))
	assert.Equal(t, "12.50",
		nullDecimalCell(decimal.NullDecimal{Decimal: decimal.RequireFromString("12.5"), Valid: true}))
}

func TestWrite_ContentTypes(t *testing.T) {
	dir := t.TempDir()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "recon-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "recon-reports", mock.Anything, mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/csv" || opts.ContentType == "application/json"
		})).Return(minio.UploadInfo{}, nil).Times(3)

	reporter := New(dir, zap.NewNop()).WithUpload(client, "recon-reports")
	_, err := reporter.Write(context.Background(), nil, nil, emptyReconReport(), "run-1")
	require.NoError(t, err)

	client.AssertExpectations(t)

	// The CSV artifact still carries its header even with zero rows.
	data, err := os.ReadFile(dir + "/" + DatasetFile)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(datasetColumns, ","), strings.TrimSpace(string(data)))
}
