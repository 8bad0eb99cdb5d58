// Package cli wires the concrete store adapters together behind the unified
// interface and exposes the demonstration commands. This is the only place
// that knows which adapter variant backs a store name; everything past
// openStore speaks datastore.DataStore exclusively.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nimburion/unistore/pkg/config"
	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/datastore/dynamodb"
	"github.com/nimburion/unistore/pkg/datastore/mongodb"
	"github.com/nimburion/unistore/pkg/datastore/mysql"
	"github.com/nimburion/unistore/pkg/datastore/postgres"
	"github.com/nimburion/unistore/pkg/datastore/redis"
	"github.com/nimburion/unistore/pkg/datastore/s3"
	"github.com/nimburion/unistore/pkg/health"
	"github.com/nimburion/unistore/pkg/observability/logger"
	"github.com/nimburion/unistore/pkg/sensor"
	"github.com/nimburion/unistore/pkg/version"
)

const envPrefix = "UNISTORE"

// Execute runs the unistore command tree.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the root command with its subcommands.
func NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "unistore",
		Short:         "Unified data-access adapters over heterogeneous stores",
		Version:       version.Current().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to configuration file")

	root.AddCommand(newDemoCommand(&configFile))
	root.AddCommand(newHealthCommand(&configFile))
	root.AddCommand(newSensorCommand())
	return root
}

func newHealthCommand(configFile *string) *cobra.Command {
	var storeNames []string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check connectivity of the selected store adapters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(*configFile)
			if err != nil {
				return err
			}

			registry := health.NewRegistry()
			for _, name := range storeNames {
				store, _, err := openStore(name, cfg, log)
				if err != nil {
					return fmt.Errorf("failed to open store %q: %w", name, err)
				}
				defer store.Close()
				registry.Register(name, store)
			}

			healthy := true
			for _, result := range registry.CheckAll(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s", result.Name, result.Status)
				if result.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), " (%s)", result.Error)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				if result.Status != health.StatusHealthy {
					healthy = false
				}
			}
			if !healthy {
				return fmt.Errorf("one or more stores are unhealthy")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&storeNames, "store", []string{"mysql"}, "store variants to check")
	return cmd
}

func newDemoCommand(configFile *string) *cobra.Command {
	var storeName string
	var identifier string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write-then-read round trip through one adapter variant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(*configFile)
			if err != nil {
				return err
			}

			store, payload, err := openStore(storeName, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := store.Close(); cerr != nil {
					log.Error("failed to close store", "store", storeName, "error", cerr)
				}
			}()

			ctx := cmd.Context()
			if err := store.WriteData(ctx, identifier, payload); err != nil {
				return fmt.Errorf("write failed: %w", err)
			}
			data, err := store.ReadData(ctx, identifier)
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}

			log.Info("round trip complete", "store", storeName, "identifier", identifier)
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", data)
			return nil
		},
	}
	cmd.Flags().StringVar(&storeName, "store", "mysql", "store variant: mysql, postgres, mongodb, dynamodb, s3, redis")
	cmd.Flags().StringVar(&identifier, "identifier", "demo_data", "table, collection, object key, or key to exercise")
	return cmd
}

func newSensorCommand() *cobra.Command {
	var fahrenheit float64

	cmd := &cobra.Command{
		Use:   "sensor",
		Short: "Expose a Fahrenheit sensor to Celsius-expecting code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			celsius := sensor.NewCelsiusSensor(25)
			adapted := sensor.NewCelsiusAdapter(sensor.NewFahrenheitSensor(fahrenheit))

			// Both satisfy the same contract; the adapter makes the units agree.
			for _, s := range []sensor.TemperatureSensor{celsius, adapted} {
				fmt.Fprintf(cmd.OutOrStdout(), "%.2f°C\n", s.Temperature())
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&fahrenheit, "fahrenheit", 77, "reading of the wrapped Fahrenheit sensor")
	return cmd
}

func loadConfig(configFile string) (*config.Config, logger.Logger, error) {
	cfg, err := config.NewViperLoader(configFile, envPrefix).Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := logger.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logger.ParseLogFormat(cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// openStore selects and constructs the adapter variant for the store name,
// returning it together with a correctly shaped demo payload. The payload
// shape differs per variant because the unified contract does not normalize
// data shapes.
func openStore(name string, cfg *config.Config, log logger.Logger) (datastore.DataStore, any, error) {
	switch name {
	case "mysql":
		a, err := mysql.NewAdapter(mysql.Config{
			URL:             cfg.MySQL.URL,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			QueryTimeout:    cfg.MySQL.QueryTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return a, datastore.Row{1, "a", "b"}, nil
	case "postgres":
		a, err := postgres.NewAdapter(postgres.Config{
			URL:             cfg.Postgres.URL,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
			QueryTimeout:    cfg.Postgres.QueryTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return a, datastore.Row{1, "a", "b"}, nil
	case "mongodb":
		a, err := mongodb.NewAdapter(mongodb.Config{
			URL:              cfg.MongoDB.URL,
			Database:         cfg.MongoDB.Database,
			ConnectTimeout:   cfg.MongoDB.ConnectTimeout,
			OperationTimeout: cfg.MongoDB.OperationTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return a, datastore.Document{"x": 1}, nil
	case "dynamodb":
		a, err := dynamodb.NewAdapter(dynamodb.Config{
			Region:           cfg.DynamoDB.Region,
			Endpoint:         cfg.DynamoDB.Endpoint,
			AccessKeyID:      cfg.DynamoDB.AccessKeyID,
			SecretAccessKey:  cfg.DynamoDB.SecretAccessKey,
			SessionToken:     cfg.DynamoDB.SessionToken,
			OperationTimeout: cfg.DynamoDB.OperationTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return a, datastore.Document{"id": "demo", "x": 1}, nil
	case "s3":
		a, err := s3.NewAdapter(s3.Config{
			Bucket:           cfg.S3.Bucket,
			Region:           cfg.S3.Region,
			Endpoint:         cfg.S3.Endpoint,
			AccessKeyID:      cfg.S3.AccessKeyID,
			SecretAccessKey:  cfg.S3.SecretAccessKey,
			SessionToken:     cfg.S3.SessionToken,
			UsePathStyle:     cfg.S3.UsePathStyle,
			OperationTimeout: cfg.S3.OperationTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return a, "hello", nil
	case "redis":
		a, err := redis.NewAdapter(redis.Config{
			URL:              cfg.Redis.URL,
			MaxConns:         cfg.Redis.MaxConns,
			OperationTimeout: cfg.Redis.OperationTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return a, "hello", nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", name)
	}
}

// Main is the entry point used by cmd/unistore.
func Main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
