// Package database handles source database connections and schema inspection.
//
// It provides a wrapper around GORM to configure connections to the two
// analytics sources, which run on different engines (MySQL and PostgreSQL).
// There is no process-wide connection state: every source carries its own
// Config and its own *gorm.DB handle.
//
// # Connect
//
// Connect establishes and pings a connection based on the per-source Config.
// The configured timeout bounds both connection setup and I/O, so a dead
// source surfaces promptly as an error instead of hanging the batch.
//
// # Schema Inspection
//
// GetTableColumns retrieves the live column set of a source table. The
// extract stage compares it against the expected record shape and refuses to
// read from a table whose schema has drifted.
//
// # Usage
//
//	db, err := database.Connect(cfg)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "sales")
package database
