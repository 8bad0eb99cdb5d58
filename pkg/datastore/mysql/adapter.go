// Package mysql provides the relational adapter variant backed by MySQL.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/observability/logger"
)

// insertArity is the fixed column count of the insert statement. The adapter
// deliberately does not inspect the target table schema; a Row of any other
// length fails with ErrMalformedData.
const insertArity = 3

// Adapter translates the unified contract into MySQL statements over a pooled
// *sql.DB owned by the adapter.
type Adapter struct {
	db     *sql.DB
	logger logger.Logger
	config Config

	mu     sync.RWMutex
	closed bool
}

// Config holds MySQL connection configuration.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
}

// Cosa fa: inizializza l'adapter MySQL con validazione e ping iniziale.
// Cosa NON fa: non crea tabelle né esegue migrazioni schema.
// Esempio minimo: adapter, err := mysql.NewAdapter(cfg, log)
func NewAdapter(cfg Config, log logger.Logger) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("mysql", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping mysql database: %w", err)
	}

	log.Info("MySQL connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Adapter{db: db, logger: log, config: cfg}, nil
}

// DB returns the underlying *sql.DB for direct access when needed.
func (a *Adapter) DB() *sql.DB {
	return a.db
}

// ReadData fetches every row of the named table as []datastore.Row.
func (a *Adapter) ReadData(ctx context.Context, identifier string) (any, error) {
	return a.ReadRows(ctx, identifier)
}

// Cosa fa: esegue SELECT * sulla tabella e materializza tutte le righe.
// Cosa NON fa: non pagina, non filtra, non streama il cursore.
// Esempio minimo: rows, err := adapter.ReadRows(ctx, "events")
func (a *Adapter) ReadRows(ctx context.Context, table string) ([]datastore.Row, error) {
	if err := a.ensureOpen(); err != nil {
		return nil, err
	}
	if err := datastore.ValidateTableName(table); err != nil {
		return nil, err
	}

	queryCtx, cancel := a.withQueryTimeout(ctx)
	defer cancel()

	// The table name passed the identifier allow-list; values never reach
	// statement text.
	rows, err := a.db.QueryContext(queryCtx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %q: %w", table, err)
	}
	defer rows.Close()

	return scanRows(rows, table)
}

// WriteData inserts data, which must be a 3-element datastore.Row or []any,
// as a single row of the named table. Autocommit; repeated writes create
// duplicate rows.
func (a *Adapter) WriteData(ctx context.Context, identifier string, data any) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	if err := datastore.ValidateTableName(identifier); err != nil {
		return err
	}
	row, err := coerceRow(data)
	if err != nil {
		return err
	}

	queryCtx, cancel := a.withQueryTimeout(ctx)
	defer cancel()

	_, err = a.db.ExecContext(queryCtx, "INSERT INTO "+identifier+" VALUES (?, ?, ?)", row...)
	if err != nil {
		return fmt.Errorf("failed to insert into table %q: %w", identifier, err)
	}
	return nil
}

// Ping performs a basic connectivity check to verify the database is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	return a.db.PingContext(ctx)
}

// HealthCheck verifies the component is operational and can perform its intended function.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	hcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Ping(hcCtx); err != nil {
		a.logger.Error("MySQL health check failed", "error", err)
		return fmt.Errorf("mysql health check failed: %w", err)
	}
	return nil
}

// Close releases the connection pool. Close is idempotent; operations after
// Close fail with ErrClosed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.logger.Info("closing MySQL connection")
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close mysql connection: %w", err)
	}
	return nil
}

func (a *Adapter) ensureOpen() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return fmt.Errorf("%w: mysql adapter", datastore.ErrClosed)
	}
	return nil
}

func (a *Adapter) withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.config.QueryTimeout)
}

func coerceRow(data any) (datastore.Row, error) {
	var row datastore.Row
	switch v := data.(type) {
	case datastore.Row:
		row = v
	case []any:
		row = datastore.Row(v)
	default:
		return nil, fmt.Errorf("%w: expected a relational row, got %T", datastore.ErrMalformedData, data)
	}
	if len(row) != insertArity {
		return nil, fmt.Errorf("%w: expected %d values, got %d", datastore.ErrMalformedData, insertArity, len(row))
	}
	return row, nil
}

func scanRows(rows *sql.Rows, table string) ([]datastore.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %q: %w", table, err)
	}

	var out []datastore.Row
	for rows.Next() {
		values := make(datastore.Row, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row from table %q: %w", table, err)
		}
		for i, v := range values {
			// text columns come back from the driver as raw bytes
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table %q: %w", table, err)
	}
	return out, nil
}
