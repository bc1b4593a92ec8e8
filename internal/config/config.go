package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration. Every field has a default, so an
// empty environment yields the fixed local setup (port 5000, libraryDB on
// the local MongoDB). The optional backends stay disabled until configured.
type Config struct {
	Port string
	Log  struct {
		Level string
	}
	Mongo struct {
		URI string
		DB  string
	}
	Postgres struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
	}
	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}
}

// Load reads LIBRARY_* environment variables and an optional config file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.db", "libraryDB")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.accesskey", "")
	v.SetDefault("minio.secretkey", "")
	v.SetDefault("minio.bucket", "book-covers")
	v.SetDefault("minio.usessl", false)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// UsersInPostgres reports whether accounts live in PostgreSQL instead of MongoDB.
func (c *Config) UsersInPostgres() bool { return c.Postgres.DSN != "" }

func (c *Config) RedisEnabled() bool { return c.Redis.Addr != "" }

func (c *Config) MinioEnabled() bool { return c.Minio.Endpoint != "" }
