// Package datastore defines the unified data-access contract implemented by
// the per-store adapters in the subpackages. Calling code constructs one
// concrete adapter with store-specific configuration and thereafter depends
// only on the DataStore interface.
package datastore

import (
	"context"
	"fmt"
)

// Row is a single relational tuple in driver column order.
type Row []any

// Document is a single schemaless document.
type Document map[string]any

// DataStore is the unified contract over heterogeneous backing stores.
//
// The shape of the data exchanged is store-specific and intentionally not
// normalized: relational adapters read []Row and write a single Row, document
// adapters read []Document and write a single Document, object and key-value
// adapters read and write string payloads. Callers must know which adapter
// variant they hold.
type DataStore interface {
	// ReadData fetches everything addressed by identifier. There is no
	// pagination, filtering, or partial-read support; failures from the
	// underlying store client are returned wrapped, never classified or
	// retried at this layer.
	ReadData(ctx context.Context, identifier string) (any, error)

	// WriteData stores data at identifier. Data of the wrong shape for the
	// adapter variant fails with ErrMalformedData.
	WriteData(ctx context.Context, identifier string, data any) error

	// Ping performs a basic connectivity check to verify the store is reachable.
	Ping(ctx context.Context) error

	// HealthCheck verifies the adapter is operational within a short timeout.
	HealthCheck(ctx context.Context) error

	// Close releases the connection/session owned by the adapter. Close is
	// idempotent; operations after Close fail with ErrClosed.
	Close() error
}

// UnimplementedDataStore is an embeddable base whose operations fail with
// ErrNotImplemented. Embed it in partial adapters so that unimplemented
// operations fail explicitly instead of silently doing nothing.
type UnimplementedDataStore struct{}

// ReadData always fails with ErrNotImplemented.
func (UnimplementedDataStore) ReadData(_ context.Context, identifier string) (any, error) {
	return nil, fmt.Errorf("%w: ReadData(%q)", ErrNotImplemented, identifier)
}

// WriteData always fails with ErrNotImplemented.
func (UnimplementedDataStore) WriteData(_ context.Context, identifier string, _ any) error {
	return fmt.Errorf("%w: WriteData(%q)", ErrNotImplemented, identifier)
}

// Ping always fails with ErrNotImplemented.
func (UnimplementedDataStore) Ping(context.Context) error {
	return fmt.Errorf("%w: Ping", ErrNotImplemented)
}

// HealthCheck always fails with ErrNotImplemented.
func (UnimplementedDataStore) HealthCheck(context.Context) error {
	return fmt.Errorf("%w: HealthCheck", ErrNotImplemented)
}

// Close is a no-op on the unimplemented base.
func (UnimplementedDataStore) Close() error {
	return nil
}
