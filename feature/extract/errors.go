package extract

import (
	"errors"
	"fmt"

	"sales-reconciler/core/domain"
)

// Sentinel conditions for extraction failures. Both are fatal to the
// pipeline; callers test with errors.Is.
var (
	// ErrSourceUnavailable indicates the source could not be reached or read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch indicates the source table's columns do not match
	// the expected shape for the entity type.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// SourceError wraps an extraction failure with enough context (source,
// entity type, underlying cause) to diagnose without re-running.
type SourceError struct {
	// Source is the logical source name.
	Source string

	// Entity is the record family being read when the failure occurred.
	Entity domain.EntityType

	// Kind is one of the sentinel conditions above.
	Kind error

	// Err is the underlying cause.
	Err error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source %s: %s: %v", e.Source, e.Entity, e.Kind)
	}
	return fmt.Sprintf("source %s: %s: %v: %v", e.Source, e.Entity, e.Kind, e.Err)
}

// Unwrap exposes both the sentinel condition and the underlying cause.
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
