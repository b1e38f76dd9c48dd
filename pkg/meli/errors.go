package meli

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client for classified upstream failures.
var (
	ErrItemNotFound = errors.New("ITEM_NOT_FOUND")
	ErrAccessDenied = errors.New("ACCESS_DENIED")
	ErrTimeout      = errors.New("REQUEST_TIMEOUT")
	ErrConnection   = errors.New("CONNECTION_ERROR")
)

// APIError reports a non-200 upstream status that has no dedicated sentinel.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meli api returned status %d", e.StatusCode)
}
