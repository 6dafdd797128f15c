package config

import (
	"os"
	"strconv"

	"fairmind/domain/fairness"
	"fairmind/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Fairness FairnessConfig `validate:"required"`
	Report   ReportConfig
	Ops      OpsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string `validate:"required"`
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// FairnessConfig holds the audit defaults
type FairnessConfig struct {
	Threshold     float64
	PositiveLabel float64
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	Organization string
	TitlePrefix  string
}

// OpsConfig holds the operational endpoints listener settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = *loadServerConfig()

	fairnessConfig, err := loadFairnessConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load fairness configuration")
	}
	config.Fairness = *fairnessConfig

	config.Report = *loadReportConfig()
	config.Ops = *loadOpsConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:     url,
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadFairnessConfig() (*FairnessConfig, error) {
	threshold := getEnvFloatOrDefault("FAIRNESS_THRESHOLD", fairness.DefaultThreshold)
	if err := fairness.ValidateThreshold(threshold); err != nil {
		return nil, errors.ConfigInvalid("FAIRNESS_THRESHOLD must be in (0, 1]")
	}

	return &FairnessConfig{
		Threshold:     threshold,
		PositiveLabel: getEnvFloatOrDefault("POSITIVE_LABEL", fairness.DefaultPositiveLabel),
	}, nil
}

func loadReportConfig() *ReportConfig {
	return &ReportConfig{
		Organization: getEnvOrDefault("REPORT_ORGANIZATION", ""),
		TitlePrefix:  getEnvOrDefault("REPORT_TITLE_PREFIX", "Bias Audit Report"),
	}
}

func loadOpsConfig() *OpsConfig {
	return &OpsConfig{
		Port:    getEnvOrDefault("OPS_PORT", "9090"),
		Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
