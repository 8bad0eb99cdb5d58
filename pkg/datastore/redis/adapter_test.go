package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/observability/logger"
)

type mockLogger struct{}

func (m *mockLogger) Debug(string, ...any)                      {}
func (m *mockLogger) Info(string, ...any)                       {}
func (m *mockLogger) Warn(string, ...any)                       {}
func (m *mockLogger) Error(string, ...any)                      {}
func (m *mockLogger) With(...any) logger.Logger                 { return m }
func (m *mockLogger) WithContext(context.Context) logger.Logger { return m }

func TestNewAdapter_Validation(t *testing.T) {
	if _, err := NewAdapter(Config{}, &mockLogger{}); err == nil {
		t.Fatal("expected error for empty URL")
	}
	if _, err := NewAdapter(Config{URL: "not a url"}, &mockLogger{}); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestWriteData_RejectsNonTextPayload(t *testing.T) {
	// Payload shape is checked before any network call.
	a := &Adapter{client: redis.NewClient(&redis.Options{Addr: "localhost:0"}), logger: &mockLogger{}}

	if err := a.WriteData(context.Background(), "k", 42); !errors.Is(err, datastore.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
	if err := a.WriteData(context.Background(), "", "v"); !errors.Is(err, datastore.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestReadData_RejectsEmptyIdentifier(t *testing.T) {
	a := &Adapter{client: redis.NewClient(&redis.Options{Addr: "localhost:0"}), logger: &mockLogger{}}

	if _, err := a.ReadData(context.Background(), ""); !errors.Is(err, datastore.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestClose_PreventsSubsequentOperations(t *testing.T) {
	a := &Adapter{client: redis.NewClient(&redis.Options{Addr: "localhost:0"}), logger: &mockLogger{}}

	if err := a.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("expected idempotent close, got %v", err)
	}
	if _, err := a.ReadData(context.Background(), "k"); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from ReadData, got %v", err)
	}
	if err := a.WriteData(context.Background(), "k", "v"); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from WriteData, got %v", err)
	}
	if err := a.Ping(context.Background()); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from Ping, got %v", err)
	}
}
