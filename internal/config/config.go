package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the cart snapshot.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	Checkout CheckoutConfig
	Tracing  TracingConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// APIConfig holds settings for the backend REST API.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int // 0 disables the client timeout
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string // empty disables API key checks
}

// StorageConfig selects where cart snapshots live.
type StorageConfig struct {
	Backend string
	Key     string
	FileDir string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr string
}

// S3Config holds AWS S3 configuration for cart snapshots.
type S3Config struct {
	Bucket string
	Region string
	Prefix string // Path prefix within bucket (e.g., "carts/")
}

// CheckoutConfig holds the WhatsApp handoff settings.
type CheckoutConfig struct {
	WhatsAppBaseURL string
	WhatsAppNumber  string // fallback when the backend has none
	CurrencySymbol  string
	CurrencyLocale  string
	DefaultImage    string
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

// Load loads configuration from environment variables. A .env file in the
// working directory, when present, seeds variables that are not already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Storage: StorageConfig{
			Backend: getEnv("CART_STORAGE", StorageFile),
			Key:     getEnv("CART_STORAGE_KEY", "cart"),
			FileDir: getEnv("CART_FILE_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 5),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Prefix: getEnv("S3_PREFIX", "carts/"),
		},
		Checkout: CheckoutConfig{
			WhatsAppBaseURL: strings.TrimRight(getEnv("WHATSAPP_BASE_URL", "https://wa.me"), "/"),
			WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", ""),
			CurrencySymbol:  getEnv("CURRENCY_SYMBOL", "₹"),
			CurrencyLocale:  getEnv("CURRENCY_LOCALE", "en-US"),
			DefaultImage:    getEnv("DEFAULT_PRODUCT_IMAGE", "https://via.placeholder.com/400x300?text=No+Image+Available"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("TRACING_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "storefront"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("API timeout cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("cart storage key is required")
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StorageFile:
		if c.Storage.FileDir == "" {
			return fmt.Errorf("cart file directory is required for file storage")
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for redis storage")
		}
	case StoragePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 storage")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid cart storage: %s (must be memory, file, redis, postgres, or s3)", c.Storage.Backend)
	}

	if c.Checkout.WhatsAppBaseURL == "" {
		return fmt.Errorf("WhatsApp base URL is required")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Timeout returns the backend request timeout; zero means none.
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
