package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerator_Deterministic(t *testing.T) {
	params := DefaultParams()

	p1, s1 := NewGenerator(params, zap.NewNop()).Generate()
	p2, s2 := NewGenerator(params, zap.NewNop()).Generate()

	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}

func TestGenerator_DifferentSeedsDiffer(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	b.Seed = 2

	pa, _ := NewGenerator(a, zap.NewNop()).Generate()
	pb, _ := NewGenerator(b, zap.NewNop()).Generate()

	assert.NotEqual(t, pa.Customers, pb.Customers)
}

func TestGenerator_OverlapSharedBetweenSources(t *testing.T) {
	params := DefaultParams()
	primary, secondary := NewGenerator(params, zap.NewNop()).Generate()

	primaryIDs := make(map[int64]bool)
	for _, c := range primary.Customers {
		primaryIDs[c.CustomerID] = true
	}
	shared := 0
	for _, c := range secondary.Customers {
		if primaryIDs[c.CustomerID] {
			shared++
		}
	}
	assert.Greater(t, shared, 0, "sources must share an overlap region")
	assert.Less(t, shared, len(secondary.Customers), "sources must not be identical")

	// Both sides together cover the whole pool.
	assert.GreaterOrEqual(t, len(primary.Customers)+len(secondary.Customers)-shared, params.Customers)
}

func TestGenerator_FlawsLandInSecondaryOnly(t *testing.T) {
	params := DefaultParams()
	params.Sales = 2000 // enough rows that the flaw ratios reliably fire
	primary, secondary := NewGenerator(params, zap.NewNop()).Generate()

	for _, s := range primary.Sales {
		require.NotNil(t, s.SaleID, "primary source must carry no planted nulls")
	}

	nulls, broken := 0, 0
	for _, s := range secondary.Sales {
		if s.SaleID == nil {
			nulls++
		}
		if s.CustomerID > int64(params.Customers) || s.ProductID > int64(params.Products) {
			broken++
		}
	}
	assert.Greater(t, nulls, 0)
	assert.Greater(t, broken, 0)
}

func TestGenerator_ReferencesResolveBeforeFlaws(t *testing.T) {
	params := DefaultParams()
	params.BrokenRefRatio = 0
	params.NullIDRatio = 0
	primary, secondary := NewGenerator(params, zap.NewNop()).Generate()

	for _, ds := range []*Dataset{primary, secondary} {
		for _, s := range ds.Sales {
			require.NotNil(t, s.SaleID)
			assert.LessOrEqual(t, s.CustomerID, int64(params.Customers))
			assert.LessOrEqual(t, s.ProductID, int64(params.Products))
			assert.True(t, s.CustomerID >= 1)
		}
	}
}

func TestGenerator_MissingCostsPlanted(t *testing.T) {
	params := DefaultParams()
	params.Products = 400
	primary, secondary := NewGenerator(params, zap.NewNop()).Generate()

	missing := 0
	seen := make(map[int64]bool)
	for _, ds := range []*Dataset{primary, secondary} {
		for _, p := range ds.Products {
			if seen[p.ProductID] {
				continue
			}
			seen[p.ProductID] = true
			if !p.Cost.Valid {
				missing++
			}
		}
	}
	assert.Greater(t, missing, 0)
}
