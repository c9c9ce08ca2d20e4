// Package testutil provides the in-memory store used by repository and handler tests.
package testutil

import (
	"github.com/frahmantamala/finance-tracker/internal/database"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB returns a migrated in-memory database. The pool is pinned to one connection
// because every new sqlite ":memory:" connection would otherwise see an empty database.
func NewSQLiteDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSQLX shares db's connection with an sqlx handle.
func NewSQLX(db *gorm.DB) (*sqlx.DB, error) {
	return database.SQLX(db)
}
