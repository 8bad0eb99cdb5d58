// Package config loads module configuration with precedence ENV > file > defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration: logging plus one block per store adapter.
// A store block with an empty URL/bucket means that adapter is not configured;
// client code decides which adapters to construct.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	MySQL    DatabaseConfig `mapstructure:"mysql"`
	Postgres DatabaseConfig `mapstructure:"postgres"`
	MongoDB  MongoConfig    `mapstructure:"mongodb"`
	DynamoDB AWSConfig      `mapstructure:"dynamodb"`
	S3       S3Config       `mapstructure:"s3"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds settings shared by the relational adapters.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URL              string        `mapstructure:"url"`
	Database         string        `mapstructure:"database"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// AWSConfig holds settings shared by AWS-backed adapters.
type AWSConfig struct {
	Region           string        `mapstructure:"region"`
	Endpoint         string        `mapstructure:"endpoint"`
	AccessKeyID      string        `mapstructure:"access_key_id"`
	SecretAccessKey  string        `mapstructure:"secret_access_key"`
	SessionToken     string        `mapstructure:"session_token"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// S3Config holds object-storage settings.
type S3Config struct {
	AWSConfig    `mapstructure:",squash"`
	Bucket       string `mapstructure:"bucket"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	URL              string        `mapstructure:"url"`
	MaxConns         int           `mapstructure:"max_conns"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "json"},
		MySQL: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			QueryTimeout: 5 * time.Second,
		},
		Postgres: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			QueryTimeout: 5 * time.Second,
		},
		MongoDB: MongoConfig{
			ConnectTimeout:   5 * time.Second,
			OperationTimeout: 5 * time.Second,
		},
		DynamoDB: AWSConfig{OperationTimeout: 5 * time.Second},
		S3: S3Config{
			AWSConfig: AWSConfig{OperationTimeout: 10 * time.Second},
		},
		Redis: RedisConfig{
			MaxConns:         10,
			OperationTimeout: 3 * time.Second,
		},
	}
}

// Validate checks cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	if c.MongoDB.URL != "" && c.MongoDB.Database == "" {
		return fmt.Errorf("mongodb.database is required when mongodb.url is set")
	}
	if c.S3.Bucket != "" && c.S3.Region == "" {
		return fmt.Errorf("s3.region is required when s3.bucket is set")
	}
	if c.DynamoDB.Endpoint != "" && c.DynamoDB.Region == "" {
		return fmt.Errorf("dynamodb.region is required when dynamodb.endpoint is set")
	}
	return nil
}
