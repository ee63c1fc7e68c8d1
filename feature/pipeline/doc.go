// Package pipeline sequences a full reconciliation run.
//
// Control flow: one extraction worker per source (the only concurrency),
// then merge, enrich, and the validator and reconciliation engine running
// independently over the same enriched output, then reporting.
//
// # Failure Semantics
//
//   - Fatal (error return, no artifacts): source unavailable, schema
//     mismatch, an unrunnable validation check, a violated merge invariant.
//   - Recoverable (artifacts written, Outcome=issues): null drops, duplicate
//     collisions, referential violations, low join quality.
//   - Defect-class (artifacts written, Outcome=defect): orphaned identifiers
//     or unexplained losses, surfaced at maximum severity.
//
// Artifacts are always written for non-fatal runs.
package pipeline
