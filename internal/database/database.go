// Package database opens the gorm store and the sqlx read handle that share one connection pool.
package database

import (
	"fmt"

	"github.com/frahmantamala/finance-tracker/internal"
	budgetDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Models lists every table owned by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&userDatamodel.User{},
		&categoryDatamodel.Category{},
		&expenseDatamodel.Expense{},
		&budgetDatamodel.Budget{},
	}
}

// Open connects gorm to the configured driver and applies the pool limits.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.GetDSN())
	case DriverSQLite:
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the tables. Used for sqlite; postgres goes through goose.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SQLX wraps gorm's pool in an sqlx handle with the matching bind style.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlx.NewDb(sqlDB, SQLXDriverName(db.Dialector.Name())), nil
}

// SQLXDriverName maps a gorm dialector name to the driver name sqlx uses for bind vars.
func SQLXDriverName(dialector string) string {
	if dialector == DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}
