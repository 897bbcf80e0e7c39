package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Uploads   UploadsConfig   `mapstructure:"uploads"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int    `mapstructure:"port"`
	InternalSecret string `mapstructure:"internal_secret"`
	// InternalBaseURL is where the worker reaches the API's /internal surface.
	InternalBaseURL string `mapstructure:"internal_base_url"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// GeminiConfig contains settings for the generative model provider.
type GeminiConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// TemplatesConfig controls the portfolio template install root and archive limits.
type TemplatesConfig struct {
	Root            string `mapstructure:"root"`
	MaxArchiveBytes int64  `mapstructure:"max_archive_bytes"`
	MaxEntries      int    `mapstructure:"max_entries"`
	MaxEntryBytes   int64  `mapstructure:"max_entry_bytes"`
}

// UploadsConfig controls user file upload handling.
type UploadsConfig struct {
	MaxResumeBytes int64  `mapstructure:"max_resume_bytes"`
	ClamdAddr      string `mapstructure:"clamd_addr"`
}

// AuthConfig contains token signing material and lifetimes.
type AuthConfig struct {
	PrivateKeyPath  string        `mapstructure:"private_key_path"`
	PublicKeyPath   string        `mapstructure:"public_key_path"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Addr returns the host:port pair for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.internal_base_url", "http://api:8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "talentd")
	v.SetDefault("database.user", "talentd")
	v.SetDefault("database.password", "talentd")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "talentd")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.request_timeout", 90*time.Second)
	v.SetDefault("templates.root", "public/templates")
	v.SetDefault("templates.max_archive_bytes", 20<<20)
	v.SetDefault("templates.max_entries", 512)
	v.SetDefault("templates.max_entry_bytes", 5<<20)
	v.SetDefault("uploads.max_resume_bytes", 10<<20)
	v.SetDefault("uploads.clamd_addr", "tcp://localhost:3310")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 720*time.Hour)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                    "API_PORT",
		"api.internal_secret":         "INTERNAL_API_SECRET",
		"api.internal_base_url":       "INTERNAL_API_BASE_URL",
		"database.host":               "DATABASE_HOST",
		"database.port":               "DATABASE_PORT",
		"database.name":               "POSTGRES_DB",
		"database.user":               "POSTGRES_USER",
		"database.password":           "POSTGRES_PASSWORD",
		"database.sslmode":            "DATABASE_SSLMODE",
		"redis.host":                  "REDIS_HOST",
		"redis.port":                  "REDIS_PORT",
		"minio.endpoint":              "MINIO_ENDPOINT",
		"minio.access_key_id":         "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":     "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":               "MINIO_USE_SSL",
		"minio.bucket":                "MINIO_BUCKET",
		"gemini.api_key":              "GEMINI_API_KEY",
		"gemini.model":                "GEMINI_MODEL",
		"gemini.request_timeout":      "GEMINI_REQUEST_TIMEOUT",
		"templates.root":              "TEMPLATES_ROOT",
		"templates.max_archive_bytes": "TEMPLATES_MAX_ARCHIVE_BYTES",
		"templates.max_entries":       "TEMPLATES_MAX_ENTRIES",
		"templates.max_entry_bytes":   "TEMPLATES_MAX_ENTRY_BYTES",
		"uploads.max_resume_bytes":    "UPLOADS_MAX_RESUME_BYTES",
		"uploads.clamd_addr":          "CLAMD_ADDR",
		"auth.private_key_path":       "AUTH_PRIVATE_KEY_PATH",
		"auth.public_key_path":        "AUTH_PUBLIC_KEY_PATH",
		"auth.access_token_ttl":       "AUTH_ACCESS_TOKEN_TTL",
		"auth.refresh_token_ttl":      "AUTH_REFRESH_TOKEN_TTL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Gemini.APIKey == "" {
		return errors.New("gemini api key is required")
	}
	if cfg.Gemini.Model == "" {
		return errors.New("gemini model is required")
	}
	if cfg.Gemini.RequestTimeout <= 0 {
		return errors.New("gemini request timeout must be positive")
	}
	if cfg.Templates.Root == "" {
		return errors.New("templates root is required")
	}
	if cfg.Templates.MaxArchiveBytes <= 0 {
		return errors.New("templates max archive bytes must be positive")
	}
	if cfg.Templates.MaxEntries <= 0 {
		return errors.New("templates max entries must be positive")
	}
	if cfg.Templates.MaxEntryBytes <= 0 {
		return errors.New("templates max entry bytes must be positive")
	}
	if cfg.Uploads.MaxResumeBytes <= 0 {
		return errors.New("uploads max resume bytes must be positive")
	}
	return nil
}
