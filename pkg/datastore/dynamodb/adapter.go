// Package dynamodb provides the second document adapter variant, backed by
// the AWS DynamoDB API.
package dynamodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/observability/logger"
)

type dynamoAPI interface {
	ListTables(ctx context.Context, params *awsdynamodb.ListTablesInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ListTablesOutput, error)
	Scan(ctx context.Context, params *awsdynamodb.ScanInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
}

// Adapter translates the unified contract into table-level scan and put
// calls. Unlike the mongodb variant, a put on an existing primary key
// overwrites the stored item.
type Adapter struct {
	client  dynamoAPI
	logger  logger.Logger
	timeout time.Duration
	mu      sync.RWMutex
	closed  bool
}

// Config holds DynamoDB adapter configuration.
type Config struct {
	Region           string
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	SessionToken     string
	OperationTimeout time.Duration
}

// Cosa fa: costruisce client DynamoDB (AWS SDK v2) con supporto endpoint custom.
// Cosa NON fa: non crea tabelle o throughput policy.
// Esempio minimo: adapter, err := dynamodb.NewAdapter(cfg, log)
func NewAdapter(cfg Config, log logger.Logger) (*Adapter, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("aws region is required")
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 5 * time.Second
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	var opts []func(*awsdynamodb.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *awsdynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	adapter := &Adapter{
		client:  awsdynamodb.NewFromConfig(awsCfg, opts...),
		logger:  log,
		timeout: cfg.OperationTimeout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OperationTimeout)
	defer cancel()
	if err := adapter.Ping(ctx); err != nil {
		return nil, err
	}

	log.Info("DynamoDB adapter initialized", "region", cfg.Region, "endpoint", cfg.Endpoint)
	return adapter, nil
}

// Ping verifies the DynamoDB endpoint is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	opCtx, cancel := a.withOperationTimeout(ctx)
	defer cancel()
	if _, err := a.client.ListTables(opCtx, &awsdynamodb.ListTablesInput{Limit: aws.Int32(1)}); err != nil {
		return fmt.Errorf("dynamodb ping failed: %w", err)
	}
	return nil
}

// ReadData fetches every item of the named table as []datastore.Document.
func (a *Adapter) ReadData(ctx context.Context, identifier string) (any, error) {
	return a.ReadDocuments(ctx, identifier)
}

// ReadDocuments scans the whole table and materializes every item. Large
// tables paginate through successive scan pages until exhausted.
func (a *Adapter) ReadDocuments(ctx context.Context, table string) ([]datastore.Document, error) {
	if err := a.ensureOpen(); err != nil {
		return nil, err
	}
	if err := datastore.ValidateIdentifier(table); err != nil {
		return nil, err
	}

	var docs []datastore.Document
	paginator := awsdynamodb.NewScanPaginator(a.client, &awsdynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for paginator.HasMorePages() {
		opCtx, cancel := a.withOperationTimeout(ctx)
		page, err := paginator.NextPage(opCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %q: %w", table, err)
		}
		var pageDocs []datastore.Document
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageDocs); err != nil {
			return nil, fmt.Errorf("failed to decode items from table %q: %w", table, err)
		}
		docs = append(docs, pageDocs...)
	}
	return docs, nil
}

// WriteData stores data, which must be a document mapping, as a single item
// of the named table. An item with the same primary key is overwritten.
func (a *Adapter) WriteData(ctx context.Context, identifier string, data any) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	if err := datastore.ValidateIdentifier(identifier); err != nil {
		return err
	}

	var doc datastore.Document
	switch v := data.(type) {
	case datastore.Document:
		doc = v
	case map[string]any:
		doc = datastore.Document(v)
	default:
		return fmt.Errorf("%w: expected a document mapping, got %T", datastore.ErrMalformedData, data)
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", datastore.ErrMalformedData, err)
	}

	opCtx, cancel := a.withOperationTimeout(ctx)
	defer cancel()
	if _, err := a.client.PutItem(opCtx, &awsdynamodb.PutItemInput{
		TableName: aws.String(identifier),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to put item into table %q: %w", identifier, err)
	}
	return nil
}

// HealthCheck verifies the component is operational and can perform its intended function.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	hcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Ping(hcCtx); err != nil {
		a.logger.Error("DynamoDB health check failed", "error", err)
		return fmt.Errorf("dynamodb health check failed: %w", err)
	}
	return nil
}

// Close marks the adapter as closed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

func (a *Adapter) ensureOpen() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return fmt.Errorf("%w: dynamodb adapter", datastore.ErrClosed)
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
