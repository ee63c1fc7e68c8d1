// Package merge combines per-source record batches into one deduplicated set
// per entity type.
//
// # Deduplication
//
// Records are keyed by their natural identifier. Identifier collisions are
// resolved by an explicit, configurable source priority order; the losers are
// recorded as duplicate issues retaining every source tag so the
// reconciliation engine can account for them record by record.
//
// # Null Policy
//
// Each entity type has a default-or-drop policy: a missing identifier drops
// the record (raising a null-value issue); any other missing field receives
// its configured default (e.g. state -> "UNKNOWN").
//
// The merge guarantee: output identifiers are a subset of the union of input
// identifiers, each appearing exactly once.
package merge
