// Package mongodb provides the document adapter variant backed by MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/observability/logger"
)

// Adapter translates the unified contract into MongoDB collection operations.
// One named database is selected at construction and held for the adapter's
// lifetime.
type Adapter struct {
	client   *mongo.Client
	database string
	logger   logger.Logger
	timeout  time.Duration
	mu       sync.RWMutex
	closed   bool
}

// Config holds MongoDB adapter configuration.
type Config struct {
	URL              string
	Database         string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

// Cosa fa: inizializza l'adapter MongoDB e verifica connettività via ping.
// Cosa NON fa: non crea indici o collezioni automaticamente.
// Esempio minimo: adapter, err := mongodb.NewAdapter(cfg, log)
func NewAdapter(cfg Config, log logger.Logger) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongodb URL is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongodb database is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info("MongoDB connection established", "database", cfg.Database)
	return &Adapter{
		client:   client,
		database: cfg.Database,
		logger:   log,
		timeout:  cfg.OperationTimeout,
	}, nil
}

// Client returns the underlying *mongo.Client for direct access when needed.
func (a *Adapter) Client() *mongo.Client {
	return a.client
}

// Collection returns a handle to the named collection of the bound database.
func (a *Adapter) Collection(name string) *mongo.Collection {
	return a.client.Database(a.database).Collection(name)
}

// ReadData fetches every document of the named collection as []datastore.Document.
func (a *Adapter) ReadData(ctx context.Context, identifier string) (any, error) {
	return a.ReadDocuments(ctx, identifier)
}

// Cosa fa: materializza l'intera collection in memoria, senza filtro né proiezione.
// Cosa NON fa: non streama il cursore verso il chiamante.
// Esempio minimo: docs, err := adapter.ReadDocuments(ctx, "events")
func (a *Adapter) ReadDocuments(ctx context.Context, collection string) ([]datastore.Document, error) {
	if err := a.ensureOpen(); err != nil {
		return nil, err
	}
	if err := datastore.ValidateIdentifier(collection); err != nil {
		return nil, err
	}

	opCtx, cancel := a.withOperationTimeout(ctx)
	defer cancel()

	cursor, err := a.Collection(collection).Find(opCtx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %q: %w", collection, err)
	}
	var docs []datastore.Document
	if err := cursor.All(opCtx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", collection, err)
	}
	return docs, nil
}

// WriteData inserts data, which must be a document mapping, as a single new
// document of the named collection. Repeated writes create duplicate documents.
func (a *Adapter) WriteData(ctx context.Context, identifier string, data any) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	if err := datastore.ValidateIdentifier(identifier); err != nil {
		return err
	}
	doc, err := coerceDocument(data)
	if err != nil {
		return err
	}

	opCtx, cancel := a.withOperationTimeout(ctx)
	defer cancel()

	if _, err := a.Collection(identifier).InsertOne(opCtx, doc); err != nil {
		return fmt.Errorf("failed to insert into collection %q: %w", identifier, err)
	}
	return nil
}

// Ping verifies the MongoDB connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	return a.client.Ping(ctx, readpref.Primary())
}

// HealthCheck verifies the component is operational and can perform its intended function.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	hcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Ping(hcCtx); err != nil {
		a.logger.Error("MongoDB health check failed", "error", err)
		return fmt.Errorf("mongodb health check failed: %w", err)
	}
	return nil
}

// Close disconnects the client. Close is idempotent.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close mongodb connection: %w", err)
	}
	return nil
}

func (a *Adapter) ensureOpen() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return fmt.Errorf("%w: mongodb adapter", datastore.ErrClosed)
	}
	return nil
}

func (a *Adapter) withOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.timeout)
}

func coerceDocument(data any) (datastore.Document, error) {
	switch v := data.(type) {
	case datastore.Document:
		return v, nil
	case map[string]any:
		return datastore.Document(v), nil
	case bson.M:
		return datastore.Document(v), nil
	default:
		return nil, fmt.Errorf("%w: expected a document mapping, got %T", datastore.ErrMalformedData, data)
	}
}
