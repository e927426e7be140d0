package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/config"
)

var DB *sql.DB

// Connect establishes the report database connection, retrying the ping with
// exponential backoff until pgConfig.ConnectTimeout elapses
func Connect(pgConfig *config.PostgresConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", pgConfig.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool; a run writes one report, so the pool stays small
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := PingWithBackoff(db, pgConfig.ConnectTimeout, logger); err != nil {
		db.Close()
		return err
	}

	DB = db
	return nil
}

// PingWithBackoff pings db until it answers or maxElapsed passes
func PingWithBackoff(db *sql.DB, maxElapsed time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed

	err := backoff.RetryNotify(db.Ping, b, func(err error, next time.Duration) {
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		return err
	}
	return nil
}
