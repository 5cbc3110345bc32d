/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads docstore settings from a .env file, an optional YAML
// file and the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/docstore/internal/logging"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendMongoDB  = "mongodb"
	BackendRedis    = "redis"
)

var backends = []string{BackendMemory, BackendDynamoDB, BackendMongoDB, BackendRedis}

// Config is the full docstore configuration.
type Config struct {
	Backend  string         `yaml:"backend"`
	Log      LogConfig      `yaml:"log"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	Redis    RedisConfig    `yaml:"redis"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type DynamoDBConfig struct {
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint"`
	// Delimiter separates database and container in table names.
	Delimiter       string `yaml:"delimiter"`
	DefaultDatabase string `yaml:"defaultDatabase"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri"`
	PageSize int    `yaml:"pageSize"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	DB       int    `yaml:"db"`
	PageSize int64  `yaml:"pageSize"`
}

// DefaultConfig returns the in-memory backend with info logging.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Log:     LogConfig{Level: string(logging.LevelInfo)},
		DynamoDB: DynamoDBConfig{
			Region:          "us-east-1",
			Delimiter:       ".",
			DefaultDatabase: "default",
		},
		MongoDB: MongoDBConfig{PageSize: 100},
		Redis:   RedisConfig{PageSize: 100},
	}
}

// Load reads envFile (".env" when empty; a missing file is ignored), then the
// YAML file at path when path is non-empty, then environment overrides.
// The result is validated.
func Load(path, envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Backend, "DOCSTORE_BACKEND")
	setString(&c.Log.Level, "LOG_LEVEL")

	setString(&c.DynamoDB.AccessKey, "AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY")
	setString(&c.DynamoDB.SecretKey, "AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY")
	setString(&c.DynamoDB.Region, "AWS_REGION")
	setString(&c.DynamoDB.Endpoint, "AWS_ENDPOINT")

	setString(&c.MongoDB.URI, "MONGODB_URI")

	setString(&c.Redis.URL, "REDIS_URL")
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	return nil
}

// setString assigns the first non-empty variable among names.
func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DynamoDB.Delimiter == "" {
		c.DynamoDB.Delimiter = defaults.DynamoDB.Delimiter
	}
	if c.DynamoDB.DefaultDatabase == "" {
		c.DynamoDB.DefaultDatabase = defaults.DynamoDB.DefaultDatabase
	}
	if c.MongoDB.PageSize < 1 {
		c.MongoDB.PageSize = defaults.MongoDB.PageSize
	}
	if c.Redis.PageSize < 1 {
		c.Redis.PageSize = defaults.Redis.PageSize
	}
}

// Validate checks the backend name, the log level and the settings the
// selected backend cannot run without.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("unknown backend %q, expected one of %v", c.Backend, backends)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.Backend {
	case BackendDynamoDB:
		if c.DynamoDB.Region == "" {
			return errors.New("dynamodb: region is required")
		}
		if (c.DynamoDB.AccessKey == "") != (c.DynamoDB.SecretKey == "") {
			return errors.New("dynamodb: access key and secret key must be set together")
		}
	case BackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("mongodb: uri is required")
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return errors.New("redis: url is required")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("redis: invalid db %d", c.Redis.DB)
		}
	}
	return nil
}

// Logging converts the log section into a logging.Config.
func (c *Config) Logging() logging.Config {
	out := logging.DefaultConfig()
	out.Level, _ = logging.ParseLevel(c.Log.Level)
	out.Pretty = c.Log.Pretty
	return out
}
