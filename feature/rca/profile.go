package rca

import (
	"sales-reconciler/core/domain"

	"github.com/shopspring/decimal"
)

// Profile computes distribution summaries (min, max, mean, null count) for
// every numeric field, on both the raw and the final sets, so downstream
// tooling can compare drift introduced by the transform.
func (e *Engine) Profile() error {
	if err := e.advance(StageDiff, StageProfile); err != nil {
		return err
	}

	// Customers carry no numeric fields; their profiles stay empty.
	e.report.Entities[domain.EntityCustomer].RawProfile = []domain.FieldSummary{}
	e.report.Entities[domain.EntityCustomer].FinalProfile = []domain.FieldSummary{}

	var rawProducts []domain.Product
	for _, b := range e.in.RawProducts {
		rawProducts = append(rawProducts, b.Records...)
	}
	e.report.Entities[domain.EntityProduct].RawProfile = productProfile(rawProducts)
	e.report.Entities[domain.EntityProduct].FinalProfile = productProfile(e.in.FinalProducts)

	var rawSales []domain.Sale
	for _, b := range e.in.RawSales {
		rawSales = append(rawSales, b.Records...)
	}
	e.report.Entities[domain.EntitySale].RawProfile = saleProfile(rawSales)
	e.report.Entities[domain.EntitySale].FinalProfile = enrichedProfile(e.in.Final)

	return nil
}

func productProfile(products []domain.Product) []domain.FieldSummary {
	price := make([]decimal.NullDecimal, len(products))
	cost := make([]decimal.NullDecimal, len(products))
	stock := make([]decimal.NullDecimal, len(products))
	for i, p := range products {
		price[i] = decimal.NullDecimal{Decimal: p.Price, Valid: true}
		cost[i] = p.Cost
		stock[i] = decimal.NullDecimal{Decimal: decimal.NewFromInt(p.StockQuantity), Valid: true}
	}
	return []domain.FieldSummary{
		summarize("price", price),
		summarize("cost", cost),
		summarize("stock_quantity", stock),
	}
}

func saleProfile(sales []domain.Sale) []domain.FieldSummary {
	quantity := make([]decimal.NullDecimal, len(sales))
	unitPrice := make([]decimal.NullDecimal, len(sales))
	total := make([]decimal.NullDecimal, len(sales))
	for i, s := range sales {
		quantity[i] = decimal.NullDecimal{Decimal: decimal.NewFromInt(s.Quantity), Valid: true}
		unitPrice[i] = decimal.NullDecimal{Decimal: s.UnitPrice, Valid: true}
		total[i] = decimal.NullDecimal{Decimal: s.TotalAmount, Valid: true}
	}
	return []domain.FieldSummary{
		summarize("quantity", quantity),
		summarize("unit_price", unitPrice),
		summarize("total_amount", total),
	}
}

func enrichedProfile(rows []domain.EnrichedSale) []domain.FieldSummary {
	quantity := make([]decimal.NullDecimal, len(rows))
	unitPrice := make([]decimal.NullDecimal, len(rows))
	total := make([]decimal.NullDecimal, len(rows))
	profit := make([]decimal.NullDecimal, len(rows))
	margin := make([]decimal.NullDecimal, len(rows))
	for i, r := range rows {
		quantity[i] = decimal.NullDecimal{Decimal: decimal.NewFromInt(r.Quantity), Valid: true}
		unitPrice[i] = decimal.NullDecimal{Decimal: r.UnitPrice, Valid: true}
		total[i] = decimal.NullDecimal{Decimal: r.TotalAmount, Valid: true}
		profit[i] = decimal.NullDecimal{Decimal: r.Profit, Valid: true}
		margin[i] = r.MarginPercent
	}
	return []domain.FieldSummary{
		summarize("quantity", quantity),
		summarize("unit_price", unitPrice),
		summarize("total_amount", total),
		summarize("profit", profit),
		summarize("margin_percent", margin),
	}
}

// summarize reduces one numeric column to min/max/mean/null-count. Nulls are
// counted, not imputed; an all-null column reports zero min/max/mean.
func summarize(field string, values []decimal.NullDecimal) domain.FieldSummary {
	out := domain.FieldSummary{Field: field}

	sum := decimal.Zero
	first := true
	for _, v := range values {
		if !v.Valid {
			out.NullCount++
			continue
		}
		out.Count++
		sum = sum.Add(v.Decimal)
		if first {
			out.Min, out.Max = v.Decimal, v.Decimal
			first = false
			continue
		}
		if v.Decimal.LessThan(out.Min) {
			out.Min = v.Decimal
		}
		if v.Decimal.GreaterThan(out.Max) {
			out.Max = v.Decimal
		}
	}
	if out.Count > 0 {
		out.Mean = sum.DivRound(decimal.NewFromInt(int64(out.Count)), 4)
	}
	return out
}
