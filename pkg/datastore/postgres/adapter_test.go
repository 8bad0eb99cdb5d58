package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

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

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &Adapter{db: db, logger: &mockLogger{}, config: Config{QueryTimeout: time.Second}}, mock
}

func TestNewAdapter_Validation(t *testing.T) {
	if _, err := NewAdapter(Config{}, &mockLogger{}); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestWriteData_UsesPositionalPlaceholders(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectExec("INSERT INTO events VALUES ($1, $2, $3)").
		WithArgs(1, "a", "b").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := a.WriteData(context.Background(), "events", datastore.Row{1, "a", "b"}); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sqlmock expectations: %v", err)
	}
}

func TestWriteData_WrongShapeFails(t *testing.T) {
	a, _ := newMockAdapter(t)

	if err := a.WriteData(context.Background(), "events", datastore.Row{1}); !errors.Is(err, datastore.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
	if err := a.WriteData(context.Background(), "bad name", datastore.Row{1, "a", "b"}); !errors.Is(err, datastore.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestReadRows_MaterializesAllRows(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT * FROM events").WillReturnRows(
		sqlmock.NewRows([]string{"id", "kind", "payload"}).
			AddRow(int64(7), []byte("x"), "y"),
	)

	rows, err := a.ReadRows(context.Background(), "events")
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0] != int64(7) || rows[0][1] != "x" || rows[0][2] != "y" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestClose_PreventsSubsequentOperations(t *testing.T) {
	a, mock := newMockAdapter(t)
	mock.ExpectClose()

	if err := a.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("expected idempotent close, got %v", err)
	}
	if err := a.WriteData(context.Background(), "events", datastore.Row{1, "a", "b"}); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from WriteData, got %v", err)
	}
	if _, err := a.ReadData(context.Background(), "events"); !errors.Is(err, datastore.ErrClosed) {
		t.Fatalf("expected ErrClosed from ReadData, got %v", err)
	}
}
