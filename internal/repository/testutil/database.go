package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/themizzi/uxverify/internal/config"
	"github.com/themizzi/uxverify/internal/database"
)

var localDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

// ReportSchema returns a connection whose search_path points at a fresh schema
// holding the report tables. The schema is dropped when the test ends.
func ReportSchema(t *testing.T) *sql.DB {
	t.Helper()

	pgConfig, err := config.LoadPostgresConfig(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return localDefaults[key]
	})
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	schema := "reports_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := sql.Open("postgres", fmt.Sprintf("%s search_path=%s", pgConfig.ConnectionString(), schema))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if _, err := db.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE"); err != nil {
			t.Logf("Failed to drop schema %s: %v", schema, err)
		}
		db.Close()
	})

	if err := database.PingWithBackoff(db, 10*time.Second, nil); err != nil {
		t.Fatalf("Database unavailable: %v", err)
	}
	if _, err := db.Exec("CREATE SCHEMA " + schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := database.ApplySchema(db); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return db
}
