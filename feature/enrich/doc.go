// Package enrich joins merged sales to their customer and product records and
// computes the derived metrics of the final dataset.
//
// # Join Semantics
//
// The analytics output is an inner join: a sale whose customer or product
// does not resolve is excluded and reported as a reference violation, never
// silently dropped. A left-join variant (CohortByCustomer) serves ranking and
// cohort views where zero-sale customers must still appear.
//
// # Derived Metrics
//
//	profit         = (unit_price - cost) * quantity
//	margin_percent = profit / (unit_price * quantity) * 100, rounded to 2
//
// Margin is null (not an error) when the unit price is zero. All monetary
// math uses shopspring decimals; no floats touch money.
//
// # Standardization
//
// Pure functions canonicalize formats: names are title-cased, emails
// lowercased, dates pinned to UTC, money rounded to two decimals.
package enrich
