package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"realty-backend/internal/models"
)

// Open opens a GORM DB from DSN. Postgres URLs (Supabase/Postgres pooler)
// use the postgres driver; "sqlite://" and "file:" DSNs open a local SQLite
// database for development.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	if path, ok := sqlitePath(dsn); ok {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; ":memory:" is also private to its connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

func sqlitePath(dsn string) (string, bool) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return strings.TrimPrefix(dsn, "sqlite://"), true
	case strings.HasPrefix(dsn, "file:"):
		return dsn, true
	}
	return "", false
}

// AutoMigrate creates or updates the property tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Income{},
		&models.Expense{},
		&models.Financing{},
	)
}
