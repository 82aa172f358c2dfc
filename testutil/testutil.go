package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"p9e.in/fabtrack/config"
	"p9e.in/fabtrack/pkg/records"
)

// Test defaults mirror the production configuration.
const (
	EnquiryPrefix = "VE/TN"
	JWTSecret     = "fabtrack-test-secret"
)

// SetupTestDB opens a migrated SQLite database private to t.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "fabtrack.db") + "?_foreign_keys=on"
	db, err := config.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := config.Migrations(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SetupServices wires every record service over a fresh test database.
// Password hashing uses the minimum bcrypt cost.
func SetupServices(t *testing.T) (*gorm.DB, *records.Services) {
	t.Helper()
	db := SetupTestDB(t)
	svc := records.NewServices(db, records.Options{
		EnquiryPrefix:      EnquiryPrefix,
		EnquiryMaxAttempts: 5,
	}, zap.NewNop())
	svc.Credentials.WithCost(4)
	return db, svc
}
