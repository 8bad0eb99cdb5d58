package datastore

import "errors"

var (
	// ErrNotImplemented classifies calls on an operation the adapter does not provide.
	ErrNotImplemented = errors.New("datastore operation not implemented")
	// ErrNotFound classifies reads of identifiers the store has no data for.
	ErrNotFound = errors.New("datastore not found")
	// ErrMalformedData classifies write payloads of the wrong shape for the adapter variant.
	ErrMalformedData = errors.New("datastore malformed data")
	// ErrInvalidIdentifier classifies empty identifiers and identifiers rejected by the allow-list.
	ErrInvalidIdentifier = errors.New("datastore invalid identifier")
	// ErrClosed classifies operations on an already closed adapter.
	ErrClosed = errors.New("datastore closed")
)
