package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

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
		t.Fatal("expected error for empty URL and database")
	}
	if _, err := NewAdapter(Config{URL: "mongodb://localhost:27017"}, &mockLogger{}); err == nil {
		t.Fatal("expected error for empty database")
	}
}

func TestOperations_WhenClosed(t *testing.T) {
	a := &Adapter{closed: true}

	if err := a.Ping(context.Background()); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from Ping, got %v", err)
	}
	if _, err := a.ReadData(context.Background(), "events"); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from ReadData, got %v", err)
	}
	if err := a.WriteData(context.Background(), "events", datastore.Document{"x": 1}); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from WriteData, got %v", err)
	}
}

func TestClose_IdempotentWhenAlreadyClosed(t *testing.T) {
	a := &Adapter{closed: true}
	if err := a.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestCoerceDocument(t *testing.T) {
	for _, data := range []any{
		datastore.Document{"x": 1},
		map[string]any{"x": 1},
		bson.M{"x": 1},
	} {
		doc, err := coerceDocument(data)
		if err != nil {
			t.Fatalf("unexpected error for %T: %v", data, err)
		}
		if doc["x"] != 1 {
			t.Fatalf("unexpected document for %T: %+v", data, doc)
		}
	}

	if _, err := coerceDocument([]any{1, 2, 3}); !errors.Is(err, datastore.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData for slice payload, got %v", err)
	}
	if _, err := coerceDocument("text"); !errors.Is(err, datastore.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData for string payload, got %v", err)
	}
}

func TestWithOperationTimeout_UsesAdapterTimeoutWhenNoDeadline(t *testing.T) {
	a := &Adapter{timeout: 2 * time.Second}

	ctx, cancel := a.withOperationTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected deadline from operation timeout")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > 2*time.Second {
		t.Fatalf("unexpected remaining timeout: %v", remaining)
	}
}

func TestWithOperationTimeout_PreservesCallerDeadline(t *testing.T) {
	a := &Adapter{timeout: 2 * time.Second}
	parentCtx, parentCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer parentCancel()

	ctx, cancel := a.withOperationTimeout(parentCtx)
	defer cancel()

	parentDeadline, _ := parentCtx.Deadline()
	gotDeadline, _ := ctx.Deadline()
	if !gotDeadline.Equal(parentDeadline) {
		t.Fatalf("expected caller deadline to be preserved, got %v want %v", gotDeadline, parentDeadline)
	}
}
