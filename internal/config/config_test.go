/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suparena/docstore/internal/logging"
)

var configEnv = []string{
	"DOCSTORE_BACKEND", "LOG_LEVEL",
	"AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY",
	"AWS_REGION", "AWS_ENDPOINT", "MONGODB_URI", "REDIS_URL", "REDIS_DB",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnv {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.Backend)
	}
	if cfg.DynamoDB.Delimiter != "." || cfg.MongoDB.PageSize != 100 {
		t.Errorf("Expected defaults applied, got %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "docstore.yaml", `
backend: redis
log:
  level: debug
  pretty: true
redis:
  url: redis://localhost:6379
  db: 2
  pageSize: 25
`)
	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendRedis || cfg.Redis.DB != 2 || cfg.Redis.PageSize != 25 {
		t.Errorf("Unexpected redis settings %+v", cfg.Redis)
	}
	if lc := cfg.Logging(); lc.Level != logging.LevelDebug || !lc.Pretty {
		t.Errorf("Unexpected logging config %+v", lc)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	envFile := writeFile(t, "test.env", "DOCSTORE_BACKEND=mongodb\nMONGODB_URI=mongodb://from-dotenv\n")
	path := writeFile(t, "docstore.yaml", "backend: dynamodb\nmongodb:\n  uri: mongodb://from-yaml\n")
	t.Setenv("MONGODB_URI", "mongodb://from-env")

	cfg, err := Load(path, envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// .env fills DOCSTORE_BACKEND, which overrides YAML; the real environment wins over .env.
	if cfg.Backend != BackendMongoDB {
		t.Errorf("Expected backend from .env, got %s", cfg.Backend)
	}
	if cfg.MongoDB.URI != "mongodb://from-env" {
		t.Errorf("Expected URI from environment, got %s", cfg.MongoDB.URI)
	}
}

func TestLoadAWSVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCSTORE_BACKEND", "dynamodb")
	t.Setenv("AWS_ACCESS_KEY", "legacy-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ENDPOINT", "http://localhost:8000")

	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	d := cfg.DynamoDB
	if d.AccessKey != "legacy-key" || d.SecretKey != "secret" || d.Region != "eu-west-1" || d.Endpoint != "http://localhost:8000" {
		t.Errorf("Unexpected dynamodb settings %+v", d)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		yaml    string
		wantErr string
	}{
		{"UnknownBackend", map[string]string{"DOCSTORE_BACKEND": "cassandra"}, "", "unknown backend"},
		{"BadLogLevel", map[string]string{"LOG_LEVEL": "loud"}, "", "unknown log level"},
		{"MongoWithoutURI", map[string]string{"DOCSTORE_BACKEND": "mongodb"}, "", "uri is required"},
		{"RedisWithoutURL", map[string]string{"DOCSTORE_BACKEND": "redis"}, "", "url is required"},
		{"BadRedisDB", map[string]string{"REDIS_DB": "two"}, "", "REDIS_DB"},
		{"HalfCredentials", map[string]string{"DOCSTORE_BACKEND": "dynamodb", "AWS_ACCESS_KEY": "k"}, "", "set together"},
		{"BadYAML", nil, "backend: [", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "docstore.yaml", tt.yaml)
			}
			_, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
