// Package domain defines the typed record shapes and report structures shared
// by every stage of the reconciliation pipeline.
//
// The source systems expose loosely-typed tabular rows; this package pins them
// to explicit Go structs with compile-time-checked field sets. Monetary fields
// use shopspring decimals so derived metrics (profit, margin) are exact.
//
// # Record Lifecycle
//
// Records are created by the extract stage, combined (never mutated) by the
// merge stage into new merged records, and combined again by the enrich stage
// into EnrichedSale rows. Raw and merged snapshots are only retained long
// enough for the reconciliation engine to diff against them.
//
// # Issues and Reports
//
//   - Issue: a single data-quality finding (null value, duplicate, schema
//     mismatch, referential violation, join quality).
//   - ReconciliationReport: per-entity census, dropped/orphaned/unexplained
//     accounting, and numeric distribution summaries.
package domain
