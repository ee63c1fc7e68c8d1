// Package seed generates and loads synthetic source data for local runs
// and demos.
//
// One faked entity pool is split into two overlapping datasets, one per
// source database, so that the pipeline has real cross-source duplicates
// to resolve. The secondary dataset additionally carries planted flaws:
// null sale identifiers, dangling references, and products without a cost.
//
// Generation is seeded and fully deterministic.
package seed
