package service

import "fmt"

// ErrorKind classifies a failed lookup.
type ErrorKind string

const (
	ErrorKindInput        ErrorKind = "INVALID_CODE"
	ErrorKindNotFound     ErrorKind = "ITEM_NOT_FOUND"
	ErrorKindAccessDenied ErrorKind = "ACCESS_DENIED"
	ErrorKindUpstream     ErrorKind = "UPSTREAM_ERROR"
	ErrorKindTimeout      ErrorKind = "REQUEST_TIMEOUT"
	ErrorKindConnection   ErrorKind = "CONNECTION_ERROR"
	ErrorKindUnexpected   ErrorKind = "UNEXPECTED_ERROR"
)

// LookupError is the structured failure result of a lookup. Code is the
// normalized identifier that was requested; Status carries the upstream HTTP
// status for upstream errors. Lookups never panic the caller: every failure
// is reported through this type.
type LookupError struct {
	Kind   ErrorKind `json:"error"`
	Code   string    `json:"codigo"`
	Status int       `json:"status,omitempty"`
	cause  error
}

func (e *LookupError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

// Unwrap exposes the underlying transport or decoding error, if any.
func (e *LookupError) Unwrap() error {
	return e.cause
}
