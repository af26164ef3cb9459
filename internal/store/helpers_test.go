package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/config"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{DB: db, logger: logger.Nop()}
}

// newSQLiteDB opens a migrated sqlite file in a temp dir.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.ClientStorage{DSN: filepath.Join(t.TempDir(), "vault.db")}
	db, err := NewConnectSQLite(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func testRecord(id string) models.CredentialRecord {
	return models.CredentialRecord{
		ID:         id,
		CategoryID: "cat-1",
		Title:      models.CipheredField("aa:bb:" + id),
		Username:   "aa:bb:cc",
		Secret:     "aa:bb:dd",
		URL:        "",
		Notes:      "aa:bb:ee",
	}
}

var credentialRowColumns = []string{"id", "category_id", "title", "username", "password", "site_url", "notes"}

func credentialRow(r models.CredentialRecord) []any {
	return []any{r.ID, r.CategoryID, string(r.Title), string(r.Username), string(r.Secret), string(r.URL), string(r.Notes)}
}
