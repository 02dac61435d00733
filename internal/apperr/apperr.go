// Package apperr defines the error taxonomy shared by the service and
// handler layers. Handlers map these onto HTTP status codes; nothing
// below the handler layer knows about HTTP.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks reads, updates and deletes that reference an unknown
// record ID. A query matching zero rows is NOT a not-found condition.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict marks an update whose expected version no longer
// matches the stored record.
var ErrVersionConflict = errors.New("version conflict")

// ValidationError reports malformed input, rejected before any index call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UpstreamError wraps failures of the index store (unreachable, timed out).
// Callers may retry; the service itself retries at most once.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("index store unavailable during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// QuerySyntaxError means the index rejected a query string we built
// ourselves. This is a defect in the query builder, not a caller problem,
// and is logged as such.
type QuerySyntaxError struct {
	Query string
	Err   error
}

func (e *QuerySyntaxError) Error() string {
	return fmt.Sprintf("index rejected generated query %q: %v", e.Query, e.Err)
}

func (e *QuerySyntaxError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUpstream reports whether err wraps an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
