package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the hard cap on accepted uploads (100 MiB).
const DefaultMaxUploadBytes int64 = 104857600

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Compress CompressConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in the production environment.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// CompressConfig holds PDF compression settings.
type CompressConfig struct {
	MaxUploadBytes       int64  `mapstructure:"max_upload_bytes"`
	TempDir              string `mapstructure:"temp_dir"`
	Delivery             string `mapstructure:"delivery"`
	LargeResultWarnBytes int64  `mapstructure:"large_result_warn_bytes"`
	MultipartMemoryBytes int64  `mapstructure:"multipart_memory_bytes"`
}

// StorageConfig holds blob storage settings for link delivery.
type StorageConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	Bucket           string `mapstructure:"bucket"`
	PresignExpiry    int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether a storage backend was configured.
func (s *StorageConfig) Enabled() bool {
	return strings.TrimSpace(s.ConnectionString) != ""
}

// AuthConfig holds the function key that guards the API routes.
type AuthConfig struct {
	FunctionKey string `mapstructure:"function_key"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PDFC_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("PDFC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Compression defaults
	v.SetDefault("compress.max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("compress.temp_dir", "")
	v.SetDefault("compress.delivery", "inline")
	v.SetDefault("compress.large_result_warn_bytes", 50000000)
	v.SetDefault("compress.multipart_memory_bytes", 32<<20)

	// Storage defaults
	v.SetDefault("storage.connection_string", "")
	v.SetDefault("storage.bucket", "compressed-pdfs")
	v.SetDefault("storage.presign_expiry", 3600)

	v.SetDefault("auth.function_key", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "logfmt")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "PDFC_SERVER_PORT",
		"server.read_timeout":              "PDFC_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "PDFC_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":          "PDFC_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":               "PDFC_SERVER_ENVIRONMENT",
		"compress.max_upload_bytes":        "PDFC_COMPRESS_MAX_UPLOAD_BYTES",
		"compress.temp_dir":                "PDFC_COMPRESS_TEMP_DIR",
		"compress.delivery":                "PDFC_COMPRESS_DELIVERY",
		"compress.large_result_warn_bytes": "PDFC_COMPRESS_LARGE_RESULT_WARN_BYTES",
		"compress.multipart_memory_bytes":  "PDFC_COMPRESS_MULTIPART_MEMORY_BYTES",
		"storage.bucket":                   "PDFC_STORAGE_BUCKET",
		"storage.presign_expiry":           "PDFC_STORAGE_PRESIGN_EXPIRY",
		"auth.function_key":                "PDFC_AUTH_FUNCTION_KEY",
		"log.level":                        "PDFC_LOG_LEVEL",
		"log.format":                       "PDFC_LOG_FORMAT",
		"cors.allowed_origins":             "PDFC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	// The un-prefixed name is what function hosts usually inject.
	_ = v.BindEnv("storage.connection_string", "PDFC_STORAGE_CONNECTION_STRING", "STORAGE_CONNECTION_STRING")

	cfg := &Config{}

	// Function hosts and PaaS platforms set a PORT env var. Use it if PDFC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PDFC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Compress = CompressConfig{
		MaxUploadBytes:       v.GetInt64("compress.max_upload_bytes"),
		TempDir:              v.GetString("compress.temp_dir"),
		Delivery:             strings.ToLower(strings.TrimSpace(v.GetString("compress.delivery"))),
		LargeResultWarnBytes: v.GetInt64("compress.large_result_warn_bytes"),
		MultipartMemoryBytes: v.GetInt64("compress.multipart_memory_bytes"),
	}
	cfg.Storage = StorageConfig{
		ConnectionString: v.GetString("storage.connection_string"),
		Bucket:           v.GetString("storage.bucket"),
		PresignExpiry:    v.GetInt64("storage.presign_expiry"),
	}
	cfg.Auth = AuthConfig{
		FunctionKey: v.GetString("auth.function_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Compress.MaxUploadBytes <= 0 {
		return fmt.Errorf("compress.max_upload_bytes must be positive, got %d", c.Compress.MaxUploadBytes)
	}
	switch c.Compress.Delivery {
	case "inline", "link":
	default:
		return fmt.Errorf("compress.delivery must be inline or link, got %q", c.Compress.Delivery)
	}
	if c.Storage.PresignExpiry <= 0 {
		return fmt.Errorf("storage.presign_expiry must be positive, got %d", c.Storage.PresignExpiry)
	}
	if c.Storage.Enabled() {
		if _, err := ParseStorageConnectionString(c.Storage.ConnectionString); err != nil {
			return err
		}
	}
	return nil
}
