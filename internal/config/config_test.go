package config

import (
	"os"
	"testing"
)

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("port = %q, want 5000", cfg.Port)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.DB != "libraryDB" {
		t.Fatalf("mongo = %+v", cfg.Mongo)
	}
	if cfg.UsersInPostgres() || cfg.RedisEnabled() || cfg.MinioEnabled() {
		t.Fatalf("optional backends enabled by default: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIBRARY_PORT", "8081")
	t.Setenv("LIBRARY_MONGO_DB", "catalog_test")
	t.Setenv("LIBRARY_REDIS_ADDR", "localhost:6379")
	t.Setenv("LIBRARY_MINIO_USESSL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Mongo.DB != "catalog_test" {
		t.Fatalf("mongo db = %q", cfg.Mongo.DB)
	}
	if !cfg.RedisEnabled() || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis = %+v", cfg.Redis)
	}
	if !cfg.Minio.UseSSL {
		t.Fatalf("minio usessl not picked up")
	}
}
