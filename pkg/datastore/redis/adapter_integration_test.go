package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/observability/logger"
	"github.com/nimburion/unistore/pkg/testutil"
)

func TestAdapter_Integration_RoundTrip(t *testing.T) {
	testutil.SkipIfShort(t)

	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start Redis container: %v", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	url, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	log, err := logger.NewZapLogger(logger.Config{Level: logger.InfoLevel, Format: logger.JSONFormat})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	adapter, err := NewAdapter(Config{URL: url, MaxConns: 5}, log)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	defer adapter.Close()

	var store datastore.DataStore = adapter

	if _, err := store.ReadData(ctx, "missing"); !errors.Is(err, datastore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.WriteData(ctx, "f.txt", "hello"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := store.ReadData(ctx, "f.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if data != "hello" {
		t.Fatalf("expected %q, got %v", "hello", data)
	}

	// Overwrite semantics: repeated identical writes converge.
	if err := store.WriteData(ctx, "f.txt", "hello"); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	data, err = store.ReadData(ctx, "f.txt")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if data != "hello" {
		t.Fatalf("expected %q after overwrite, got %v", "hello", data)
	}
}
