// Package rca is the root-cause-analysis engine: it diffs the raw source
// snapshots against the merged and final datasets and explains every
// discrepancy the transform introduced.
//
// # Stages
//
// The engine is a three-stage state machine, run in order, not restartable
// mid-stage:
//
//  1. Census: raw record counts per source per entity type, merged counts,
//     final counts.
//  2. Diff: dropped = raw records absent from the final set, each attributed
//     to all applicable causes (null drop, duplicate loss, referential
//     violation) by re-checking the merge and enrich findings. A drop with
//     no attributable cause is an "unexplained loss", the most severe
//     finding the system can produce. Orphaned = final identifiers with no
//     merged antecedent; always a pipeline defect.
//  3. Profile: min/max/mean/null-count per numeric field on both raw and
//     final sets, for drift comparison.
//
// # Accounting Law
//
// For every entity type with no defect-class findings:
//
//	final_count + len(dropped) == raw_count
//
// Dropped is accounted record by record, not identifier by identifier: a
// duplicate loser counts as a drop even though its identifier survives
// through the winning record.
package rca
