// Package validate runs the fixed battery of data-quality checks over the
// merged and enriched datasets.
//
// # The Battery
//
//   - Null detection: required fields still null in the final output.
//   - Duplicate detection: identifiers repeating after merge. This should be
//     empty by construction; a finding here is a merge defect and fatal.
//   - Schema consistency: the typed record shapes still match the declared
//     field contract (checked by reflection, see checks.Schema).
//   - Referential integrity: every sale's references resolve against the
//     merged sets, independently of the enrich stage's join.
//   - Join quality: the joined/raw sales ratio against a configured floor.
//
// # Contract
//
// The ordered issue list is the output contract: grouped by kind, then by
// affected identifier ascending. Findings never abort the pipeline; only a
// check that cannot run (or a violated merge invariant) returns an error,
// and that error is fatal.
package validate
