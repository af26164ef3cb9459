package store

import (
	"database/sql"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/migrations"
)

// DB wraps the sqlite connection shared by every repository.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
