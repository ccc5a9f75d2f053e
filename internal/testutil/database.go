// Package testutil provides an in-memory store and record fixtures for tests.
package testutil

import (
	"testing"

	"github.com/deppfellow/frontdesk/internal/database"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a fresh in-memory SQLite store with the schema applied and
// foreign keys enforced as PostgreSQL does.
//
// An in-memory database lives and dies with its connection, so the pool is
// capped at a single connection that is never recycled.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger := zerolog.Nop()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig(&logger, nil))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewTestDatabase wraps NewTestDB in a *database.Database.
func NewTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.NewFromGorm(NewTestDB(t), &logger)
	if err != nil {
		t.Fatalf("wrap sqlite: %v", err)
	}
	return db
}
