// Package extract reads bounded batches of typed records from the two
// analytics sources.
//
// A Source wraps one database connection and exposes one read per entity
// type (customers, products, sales). Reads perform no transformation and no
// overlap resolution; each batch carries its source tag and is handed off
// immutable to the merge stage.
//
// # Failure Conditions
//
//   - ErrSourceUnavailable: the source cannot be reached, or a read fails.
//   - ErrSchemaMismatch: the live table columns do not match the expected
//     shape for the entity type. Checked before any rows are scanned.
//
// Both are wrapped in a SourceError carrying the source name and entity type,
// and both are fatal to the pipeline.
package extract
