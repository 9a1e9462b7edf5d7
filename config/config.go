// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/TravelTales/travel-claims-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DefaultMaxFileBytes is the per-file upload ceiling (5 MiB).
	DefaultMaxFileBytes = 5 * 1024 * 1024
)

// Storage backend identifiers.
const (
	StorageBackendInline = "inline"
	StorageBackendDisk   = "disk"
	StorageBackendS3     = "s3"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
}

// MongoConfig holds document-store connection details.
type MongoConfig struct {
	URI        string `mapstructure:"URI"`
	Database   string `mapstructure:"DATABASE"`
	Collection string `mapstructure:"COLLECTION"`
	// ServerSelectionTimeoutSeconds bounds how long the driver waits for a
	// reachable server before a command fails.
	ServerSelectionTimeoutSeconds int `mapstructure:"SERVER_SELECTION_TIMEOUT_SECONDS"`
}

// StorageConfig selects and configures the attachment storage strategy.
type StorageConfig struct {
	// Backend is one of: inline, disk, s3.
	Backend      string `mapstructure:"BACKEND"`
	UploadDir    string `mapstructure:"UPLOAD_DIR"`
	MaxFileBytes int64  `mapstructure:"MAX_FILE_BYTES"`
	S3AccountID  string `mapstructure:"S3_ACCOUNT_ID"`
	S3Bucket     string `mapstructure:"S3_BUCKET"`
	S3AccessKey  string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey  string `mapstructure:"S3_SECRET_KEY"`
}

// EmailConfig holds configuration for sending confirmation emails.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"ENABLED"`
	FromAddress  string `mapstructure:"FROM_ADDRESS"`
	FromName     string `mapstructure:"FROM_NAME"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server  ServerConfig  `mapstructure:"SERVER"`
	Mongo   MongoConfig   `mapstructure:"MONGO"`
	Storage StorageConfig `mapstructure:"STORAGE"`
	Email   EmailConfig   `mapstructure:"EMAIL"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("MONGO.DATABASE", "travel_claims")
	v.SetDefault("MONGO.COLLECTION", "submissions")
	v.SetDefault("MONGO.SERVER_SELECTION_TIMEOUT_SECONDS", 5)
	v.SetDefault("STORAGE.BACKEND", StorageBackendInline)
	v.SetDefault("STORAGE.UPLOAD_DIR", "./uploads")
	v.SetDefault("STORAGE.MAX_FILE_BYTES", DefaultMaxFileBytes)
	v.SetDefault("EMAIL.ENABLED", false)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		// Mongo config
		{"MONGO.URI", "MONGODB_URI"},
		{"MONGO.DATABASE", "MONGODB_DATABASE"},
		{"MONGO.COLLECTION", "MONGODB_COLLECTION"},
		{"MONGO.SERVER_SELECTION_TIMEOUT_SECONDS", "MONGODB_SERVER_SELECTION_TIMEOUT_SECONDS"},
		// Storage config
		{"STORAGE.BACKEND", "STORAGE_BACKEND"},
		{"STORAGE.UPLOAD_DIR", "STORAGE_UPLOAD_DIR"},
		{"STORAGE.MAX_FILE_BYTES", "STORAGE_MAX_FILE_BYTES"},
		{"STORAGE.S3_ACCOUNT_ID", "STORAGE_S3_ACCOUNT_ID"},
		{"STORAGE.S3_BUCKET", "STORAGE_S3_BUCKET"},
		{"STORAGE.S3_ACCESS_KEY", "STORAGE_S3_ACCESS_KEY"},
		{"STORAGE.S3_SECRET_KEY", "STORAGE_S3_SECRET_KEY"},
		// Email config
		{"EMAIL.ENABLED", "EMAIL_ENABLED"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"mongo_uri", logger.MaskConnectionString(cfg.Mongo.URI),
		"mongo_database", cfg.Mongo.Database,
		"storage_backend", cfg.Storage.Backend,
		"email_enabled", cfg.Email.Enabled,
	)

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.Mongo.ServerSelectionTimeoutSeconds <= 0 {
		return fmt.Errorf("MONGODB_SERVER_SELECTION_TIMEOUT_SECONDS must be positive")
	}
	if cfg.Storage.MaxFileBytes <= 0 {
		return fmt.Errorf("STORAGE_MAX_FILE_BYTES must be positive")
	}

	switch cfg.Storage.Backend {
	case StorageBackendInline:
	case StorageBackendDisk:
		if cfg.Storage.UploadDir == "" {
			return fmt.Errorf("STORAGE_UPLOAD_DIR is required for the disk backend")
		}
	case StorageBackendS3:
		if cfg.Storage.S3AccountID == "" || cfg.Storage.S3Bucket == "" ||
			cfg.Storage.S3AccessKey == "" || cfg.Storage.S3SecretKey == "" {
			return fmt.Errorf("S3 account, bucket and credentials are required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.Email.Enabled && cfg.Email.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required when email is enabled")
	}
	if cfg.Email.Enabled && cfg.Email.FromAddress == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}

	return nil
}
