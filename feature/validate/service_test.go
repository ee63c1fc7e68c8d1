package validate

import (
	"testing"
	"time"

	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cleanInput() Input {
	price := decimal.RequireFromString("10.00")
	sale := domain.Sale{
		SaleID:        1,
		CustomerID:    10,
		ProductID:     20,
		SaleDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:      1,
		UnitPrice:     price,
		TotalAmount:   price,
		PaymentMethod: "Cash",
		Status:        domain.StatusCompleted,
	}
	return Input{
		Customers: []domain.Customer{{CustomerID: 10, Name: "Jane Roe"}},
		Products:  []domain.Product{{ProductID: 20, Name: "Desk Lamp", Price: price}},
		Sales:     []domain.Sale{sale},
		Enriched: []domain.EnrichedSale{{
			Sale:         sale,
			CustomerName: "Jane Roe",
			ProductName:  "Desk Lamp",
		}},
		RawSalesTotal: 1,
	}
}

func TestService_CleanRun(t *testing.T) {
	svc := NewService(0.95, zap.NewNop())
	issues, err := svc.Run(cleanInput())
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestService_MergeIssuesCarriedThrough(t *testing.T) {
	in := cleanInput()
	in.MergeIssues = []domain.Issue{{
		Kind:     domain.IssueDuplicate,
		Entity:   domain.EntityCustomer,
		IDs:      []int64{10},
		Sources:  []string{"mysql", "postgres"},
		Severity: domain.SeverityMedium,
		Detail:   "identifier 10 supplied by sources [mysql, postgres]; kept mysql",
	}}

	svc := NewService(0.95, zap.NewNop())
	issues, err := svc.Run(in)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueDuplicate, issues[0].Kind)
}

func TestService_DuplicateSurvivingMergeIsFatal(t *testing.T) {
	in := cleanInput()
	in.Sales = append(in.Sales, in.Sales[0])

	svc := NewService(0.95, zap.NewNop())
	issues, err := svc.Run(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge invariant violated")

	// The findings are still delivered alongside the fatal error.
	require.NotEmpty(t, issues)
	assert.Equal(t, domain.SeverityCritical, issues[0].Severity)
}

func TestService_JoinQualityBelowThreshold(t *testing.T) {
	in := cleanInput()
	in.RawSalesTotal = 2 // one raw sale never joined

	svc := NewService(0.95, zap.NewNop())
	issues, err := svc.Run(in)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueJoinQuality, issues[0].Kind)
}

func TestService_IssuesDeterministicallyOrdered(t *testing.T) {
	in := cleanInput()
	// A broken product reference plus a below-threshold join ratio.
	broken := in.Sales[0]
	broken.SaleID = 2
	broken.ProductID = 88
	in.Sales = append(in.Sales, broken)
	in.RawSalesTotal = 10

	svc := NewService(0.95, zap.NewNop())
	first, err := svc.Run(in)
	require.NoError(t, err)
	second, err := svc.Run(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, domain.IssueReferential, first[0].Kind)
	assert.Equal(t, domain.IssueJoinQuality, first[1].Kind)
}

func TestNewService_NonPositiveThresholdFallsBack(t *testing.T) {
	svc := NewService(0, zap.NewNop())
	assert.Equal(t, DefaultJoinQualityThreshold, svc.threshold)
}
