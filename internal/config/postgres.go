package config

import (
	"fmt"
	"time"
)

// PostgresConfig holds configuration for the run report database
type PostgresConfig struct {
	User           string
	Password       string
	Database       string
	Host           string
	Port           string
	SSLMode        string
	ConnectTimeout time.Duration
}

// PostgresConfigured reports whether any report database setting is present
func PostgresConfigured(getenv func(string) string) bool {
	return getenv("POSTGRES_HOSTNAME") != "" || getenv("POSTGRES_DB") != ""
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:           getenv("POSTGRES_USER"),
		Password:       getenv("POSTGRES_PASSWORD"),
		Database:       getenv("POSTGRES_DB"),
		Host:           getenv("POSTGRES_HOSTNAME"),
		Port:           getenv("POSTGRES_PORT"),
		SSLMode:        getenv("POSTGRES_SSLMODE"),
		ConnectTimeout: 30 * time.Second,
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("POSTGRES_HOSTNAME is required")
	}
	if config.Port == "" {
		config.Port = "5432"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}
	if v := getenv("POSTGRES_CONNECT_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("POSTGRES_CONNECT_TIMEOUT must be a duration: %w", err)
		}
		config.ConnectTimeout = timeout
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}
