package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.Port != 8080 {
		t.Fatalf("unexpected api port: %d", cfg.API.Port)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Fatalf("unexpected sslmode: %q", cfg.Database.SSLMode)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("unexpected redis addr: %q", cfg.Redis.Addr())
	}
	if cfg.Gemini.RequestTimeout != 90*time.Second {
		t.Fatalf("unexpected gemini timeout: %v", cfg.Gemini.RequestTimeout)
	}
	if cfg.Templates.MaxArchiveBytes != 20<<20 {
		t.Fatalf("unexpected archive limit: %d", cfg.Templates.MaxArchiveBytes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("POSTGRES_DB", "talentd_prod")
	t.Setenv("UPLOADS_MAX_RESUME_BYTES", "1048576")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.Port != 9090 {
		t.Fatalf("unexpected api port: %d", cfg.API.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Name != "talentd_prod" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Uploads.MaxResumeBytes != 1<<20 {
		t.Fatalf("unexpected resume limit: %d", cfg.Uploads.MaxResumeBytes)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected negative port to be rejected")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "talentd",
		User:     "app",
		Password: "secret",
		SSLMode:  "disable",
	}
	want := "host=localhost port=5432 user=app password=secret dbname=talentd sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Fatalf("dsn mismatch:\n got %q\nwant %q", got, want)
	}
}
