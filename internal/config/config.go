package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Delete policies for books that still have borrow records attached.
const (
	DeletePolicyBlock   = "block"
	DeletePolicyCascade = "cascade"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	FrontendHTTPPort int `env:"FRONTEND_HTTP_PORT" default:"8080"`
	AdminHTTPPort    int `env:"ADMIN_HTTP_PORT" default:"8081"`

	// Database
	FrontendDatabaseURL string `env:"FRONTEND_DATABASE_URL"`
	AdminDatabaseURL    string `env:"ADMIN_DATABASE_URL"`

	// Replication (admin -> frontend)
	FrontendAPIURL     string        `env:"FRONTEND_API_URL" default:"http://localhost:8080"`
	SyncTimeout        time.Duration `env:"SYNC_TIMEOUT" default:"5s"`
	SyncBreakerEnabled bool          `env:"SYNC_BREAKER_ENABLED" default:"true"`
	SyncFailMax        int           `env:"SYNC_FAIL_MAX" default:"5"`
	SyncResetTimeout   time.Duration `env:"SYNC_RESET_TIMEOUT" default:"60s"`

	// Book deletion with outstanding borrow records: "block" or "cascade"
	DeletePolicy string `env:"DELETE_POLICY" default:"block"`

	// Sync ingestion rate limiting (requests per second per client)
	SyncRateLimit float64 `env:"SYNC_RATE_LIMIT" default:"50"`
	SyncRateBurst int     `env:"SYNC_RATE_BURST" default:"100"`

	// Development
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables, with a .env file
// as an optional source.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// A missing .env file is fine, system env vars still apply.
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// Ports
	if err := loadEnvInt(&config.FrontendHTTPPort, "FRONTEND_HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AdminHTTPPort, "ADMIN_HTTP_PORT", 8081); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvString(&config.FrontendDatabaseURL, "FRONTEND_DATABASE_URL",
		"host=localhost user=library password=library dbname=frontend port=5432 sslmode=disable"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminDatabaseURL, "ADMIN_DATABASE_URL",
		"host=localhost user=library password=library dbname=admin port=5432 sslmode=disable"); err != nil {
		return nil, err
	}

	// Replication
	if err := loadEnvString(&config.FrontendAPIURL, "FRONTEND_API_URL", "http://localhost:8080"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.SyncTimeout, "SYNC_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.SyncBreakerEnabled, "SYNC_BREAKER_ENABLED", true); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.SyncFailMax, "SYNC_FAIL_MAX", 5); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.SyncResetTimeout, "SYNC_RESET_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	// Deletion policy
	if err := loadEnvString(&config.DeletePolicy, "DELETE_POLICY", DeletePolicyBlock); err != nil {
		return nil, err
	}

	// Rate limiting
	if err := loadEnvFloat(&config.SyncRateLimit, "SYNC_RATE_LIMIT", 50); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.SyncRateBurst, "SYNC_RATE_BURST", 100); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.FrontendHTTPPort < 1 || c.FrontendHTTPPort > 65535 {
		errors = append(errors, "FRONTEND_HTTP_PORT must be between 1 and 65535")
	}
	if c.AdminHTTPPort < 1 || c.AdminHTTPPort > 65535 {
		errors = append(errors, "ADMIN_HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	validPolicies := []string{DeletePolicyBlock, DeletePolicyCascade}
	if !contains(validPolicies, c.DeletePolicy) {
		errors = append(errors, fmt.Sprintf("DELETE_POLICY must be one of: %s", strings.Join(validPolicies, ", ")))
	}

	if c.SyncFailMax < 1 {
		errors = append(errors, "SYNC_FAIL_MAX must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
