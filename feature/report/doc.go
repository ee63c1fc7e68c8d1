// Package report serializes a pipeline run to the system boundary.
//
// Three artifacts per run:
//
//   - sales_enriched.csv: the flat analytics dataset, one row per enriched
//     sale, in a stable column order consumed by downstream dashboards.
//   - validation_report.json: the full ordered issue list.
//   - reconciliation_report.json: the root-cause-analysis report.
//
// Serialization is deterministic: re-running the pipeline over unchanged
// inputs yields byte-identical artifacts. The run identifier only prefixes
// uploaded object names.
//
// With upload enabled, artifacts are also published to an S3/MinIO bucket
// under a per-run prefix.
package report
