package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration.
type Loader interface {
	Load() (*Config, error)
}

// ViperLoader implements Loader using Viper.
type ViperLoader struct {
	configFile string
	envPrefix  string
}

// NewViperLoader creates a new ViperLoader.
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "UNISTORE")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{configFile: configFile, envPrefix: envPrefix}
}

// Load loads configuration with precedence: ENV > file > defaults.
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	l.setDefaults(v, DefaultConfig())

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	if l.envPrefix != "" {
		v.SetEnvPrefix(l.envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (l *ViperLoader) setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetDefault("mysql.url", defaults.MySQL.URL)
	v.SetDefault("mysql.max_open_conns", defaults.MySQL.MaxOpenConns)
	v.SetDefault("mysql.max_idle_conns", defaults.MySQL.MaxIdleConns)
	v.SetDefault("mysql.conn_max_lifetime", defaults.MySQL.ConnMaxLifetime)
	v.SetDefault("mysql.conn_max_idle_time", defaults.MySQL.ConnMaxIdleTime)
	v.SetDefault("mysql.query_timeout", defaults.MySQL.QueryTimeout)

	v.SetDefault("postgres.url", defaults.Postgres.URL)
	v.SetDefault("postgres.max_open_conns", defaults.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", defaults.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime", defaults.Postgres.ConnMaxLifetime)
	v.SetDefault("postgres.conn_max_idle_time", defaults.Postgres.ConnMaxIdleTime)
	v.SetDefault("postgres.query_timeout", defaults.Postgres.QueryTimeout)

	v.SetDefault("mongodb.url", defaults.MongoDB.URL)
	v.SetDefault("mongodb.database", defaults.MongoDB.Database)
	v.SetDefault("mongodb.connect_timeout", defaults.MongoDB.ConnectTimeout)
	v.SetDefault("mongodb.operation_timeout", defaults.MongoDB.OperationTimeout)

	v.SetDefault("dynamodb.region", defaults.DynamoDB.Region)
	v.SetDefault("dynamodb.endpoint", defaults.DynamoDB.Endpoint)
	v.SetDefault("dynamodb.operation_timeout", defaults.DynamoDB.OperationTimeout)

	v.SetDefault("s3.bucket", defaults.S3.Bucket)
	v.SetDefault("s3.region", defaults.S3.Region)
	v.SetDefault("s3.endpoint", defaults.S3.Endpoint)
	v.SetDefault("s3.use_path_style", defaults.S3.UsePathStyle)
	v.SetDefault("s3.operation_timeout", defaults.S3.OperationTimeout)

	v.SetDefault("redis.url", defaults.Redis.URL)
	v.SetDefault("redis.max_conns", defaults.Redis.MaxConns)
	v.SetDefault("redis.operation_timeout", defaults.Redis.OperationTimeout)
}
