package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TRISHUL_SERVER_PORT
const EnvPrefix = "TRISHUL"

// List of sensitive field patterns (using regexp)
var sensitiveFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)access_?key`),
	regexp.MustCompile(`(?i)token`),
}

// ConfigSecurity provides security settings for the API
type ConfigSecurity struct {
	// TrustedProxies is a list of proxies whose forwarding headers are honored
	TrustedProxies []string `mapstructure:"trusted_proxies"`

	// RateLimiting configuration
	RateLimiting struct {
		Enabled            bool `mapstructure:"enabled"`
		ScanStartPerMinute int  `mapstructure:"scan_start_per_minute"`
		Burst              int  `mapstructure:"burst"`
	} `mapstructure:"rate_limiting"`
}

// Config holds all configuration for the application
type Config struct {
	Version  string `mapstructure:"version"`
	ServerID string `mapstructure:"server_id"`

	// Server configuration
	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		Mode            string        `mapstructure:"mode"`
		MaxUploadSize   int64         `mapstructure:"max_upload_size"` // bytes
	} `mapstructure:"server"`

	// Storage selects where scan and QC history live
	Storage struct {
		Backend string `mapstructure:"backend"` // memory or database
		Seed    bool   `mapstructure:"seed"`    // insert seed rows into empty tables
	} `mapstructure:"storage"`

	// Database configuration, used when Storage.Backend is "database"
	Database struct {
		Type     string `mapstructure:"type"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"` // Sensitive
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"ssl_mode"`
		SQLite   struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"sqlite"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
		ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	} `mapstructure:"database"`

	// Logging configuration
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"logging"`

	// Simulation tunes the mock behaviour
	Simulation struct {
		LatencyScale float64 `mapstructure:"latency_scale"` // 0 disables simulated delay
		Seed         int64   `mapstructure:"seed"`          // 0 seeds from the clock
	} `mapstructure:"simulation"`

	// CORS configuration
	CORS struct {
		AllowOrigins     []string      `mapstructure:"allow_origins"`
		AllowMethods     []string      `mapstructure:"allow_methods"`
		AllowHeaders     []string      `mapstructure:"allow_headers"`
		ExposeHeaders    []string      `mapstructure:"expose_headers"`
		AllowCredentials bool          `mapstructure:"allow_credentials"`
		MaxAge           time.Duration `mapstructure:"max_age"`
	} `mapstructure:"cors"`

	// Archive configures report archiving to object storage
	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"` // Sensitive
		SecretKey string `mapstructure:"secret_key"` // Sensitive
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
		UseSSL    bool   `mapstructure:"use_ssl"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"archive"`

	// Jobs configures the background job runner
	Jobs struct {
		Workers      int           `mapstructure:"workers"`
		QueueSize    int           `mapstructure:"queue_size"`
		Retries      int           `mapstructure:"retries"`
		RetryBackoff time.Duration `mapstructure:"retry_backoff"`
		Retention    time.Duration `mapstructure:"retention"`
	} `mapstructure:"jobs"`

	// Security configuration
	Security ConfigSecurity `mapstructure:"security"`
}

// LoadConfig loads the configuration from defaults, an optional config file
// and environment variables
func LoadConfig() (*Config, error) {
	return load("")
}

// LoadConfigFrom is like LoadConfig but reads the given config file
func LoadConfigFrom(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	var config Config

	// Set default values
	setDefaults()

	// Load configuration from file
	if err := loadConfigFile(path); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Load environment variables
	loadEnvVars()

	// Unmarshal configuration
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("version", "1.0.0")
	viper.SetDefault("server_id", "")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.max_upload_size", 32<<20)

	// Storage defaults
	viper.SetDefault("storage.backend", "memory")
	viper.SetDefault("storage.seed", true)

	// Database defaults
	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "trishul")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.sqlite.path", "trishul.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("database.conn_max_idle_time", "5m")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.file", "")

	// Simulation defaults
	viper.SetDefault("simulation.latency_scale", 1.0)
	viper.SetDefault("simulation.seed", 0)

	// CORS defaults
	viper.SetDefault("cors.allow_origins", []string{"*"})
	viper.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"})
	viper.SetDefault("cors.expose_headers", []string{"Content-Length", "Content-Disposition", "X-Request-ID", "X-Limit", "X-Skip"})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", "12h")

	// Archive defaults
	viper.SetDefault("archive.enabled", false)
	viper.SetDefault("archive.endpoint", "localhost:9000")
	viper.SetDefault("archive.access_key", "")
	viper.SetDefault("archive.secret_key", "")
	viper.SetDefault("archive.bucket", "trishul-reports")
	viper.SetDefault("archive.region", "us-east-1")
	viper.SetDefault("archive.use_ssl", false)
	viper.SetDefault("archive.prefix", "")

	// Jobs defaults
	viper.SetDefault("jobs.workers", 2)
	viper.SetDefault("jobs.queue_size", 64)
	viper.SetDefault("jobs.retries", 2)
	viper.SetDefault("jobs.retry_backoff", "500ms")
	viper.SetDefault("jobs.retention", "1h")

	// Security defaults
	viper.SetDefault("security.trusted_proxies", []string{})
	viper.SetDefault("security.rate_limiting.enabled", true)
	viper.SetDefault("security.rate_limiting.scan_start_per_minute", 5)
	viper.SetDefault("security.rate_limiting.burst", 5)
}

// loadConfigFile loads configuration from a file
func loadConfigFile(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
		return viper.ReadInConfig()
	}

	// Set configuration file name and path
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add search paths
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/trishul")

	// Read configuration file (if it exists)
	if err := viper.ReadInConfig(); err != nil {
		// It's ok if config file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// loadEnvVars binds environment variables
func loadEnvVars() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Use a validation result to collect all validation errors
	result := ValidationResult{
		Errors: []ValidationError{},
	}

	// Validate server configuration
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		result.add("server.port", fmt.Sprintf("invalid server port: %d", config.Server.Port))
	}
	switch config.Server.Mode {
	case "debug", "release", "test":
	default:
		result.add("server.mode", fmt.Sprintf("unsupported server mode: %s", config.Server.Mode))
	}

	// Validate storage configuration
	switch config.Storage.Backend {
	case "memory":
	case "database":
		validateDatabase(config, &result)
	default:
		result.add("storage.backend", fmt.Sprintf("unsupported storage backend: %s", config.Storage.Backend))
	}

	// Validate logging configuration
	if config.Logging.Format != "text" && config.Logging.Format != "json" {
		result.add("logging.format", fmt.Sprintf("unsupported log format: %s", config.Logging.Format))
	}

	// Validate simulation
	if config.Simulation.LatencyScale < 0 {
		result.add("simulation.latency_scale", "latency scale cannot be negative")
	}

	// Validate archive
	if config.Archive.Enabled {
		if config.Archive.Endpoint == "" {
			result.add("archive.endpoint", "archive endpoint is empty")
		}
		if config.Archive.Bucket == "" {
			result.add("archive.bucket", "archive bucket is empty")
		}
	}

	// Validate jobs
	if config.Jobs.Workers < 1 {
		result.add("jobs.workers", "at least one job worker is required")
	}
	if config.Jobs.QueueSize < 1 {
		result.add("jobs.queue_size", "job queue size must be positive")
	}
	if config.Jobs.Retries < 0 {
		result.add("jobs.retries", "job retries cannot be negative")
	}

	// Validate rate limiting
	if config.Security.RateLimiting.Enabled && config.Security.RateLimiting.ScanStartPerMinute < 1 {
		result.add("security.rate_limiting.scan_start_per_minute", "scan start limit must be positive when rate limiting is enabled")
	}

	if len(result.Errors) > 0 {
		return result
	}
	return nil
}

func validateDatabase(config *Config, result *ValidationResult) {
	switch config.Database.Type {
	case "sqlite":
		if config.Database.SQLite.Path == "" {
			result.add("database.sqlite.path", "sqlite database path is empty")
		}
	case "postgres":
		if config.Database.Host == "" {
			result.add("database.host", "postgres host is empty")
		}
		if config.Database.Port == 0 {
			result.add("database.port", "postgres port is empty")
		}
		if config.Database.User == "" {
			result.add("database.user", "postgres user is empty")
		}
		if config.Database.Name == "" {
			result.add("database.name", "postgres database name is empty")
		}
	default:
		result.add("database.type", fmt.Sprintf("unsupported database type: %s", config.Database.Type))
	}

	if config.Database.MaxOpenConns < 1 {
		result.add("database.max_open_conns", "max open connections must be at least 1")
	}
}

// ValidationResult holds validation results
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Error implements the error interface
func (r ValidationResult) Error() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsSensitiveField checks whether a config field should be masked
func IsSensitiveField(fieldName string) bool {
	for _, pattern := range sensitiveFieldPatterns {
		if pattern.MatchString(fieldName) {
			return true
		}
	}
	return false
}

// MaskSensitiveFields returns a copy of the configuration with secrets masked
func (c *Config) MaskSensitiveFields() Config {
	masked := *c
	maskStrings(reflect.ValueOf(&masked).Elem())
	return masked
}

// maskStrings walks struct fields and masks non-empty sensitive strings
func maskStrings(v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		name := t.Field(i).Tag.Get("mapstructure")
		switch field.Kind() {
		case reflect.Struct:
			maskStrings(field)
		case reflect.String:
			if field.String() != "" && IsSensitiveField(name) {
				field.SetString("********")
			}
		}
	}
}

// MakeDirectory creates a directory if it doesn't exist
func MakeDirectory(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// EnsureFileDirectory creates the parent directory of a file path
func EnsureFileDirectory(file string) error {
	return MakeDirectory(filepath.Dir(file))
}
