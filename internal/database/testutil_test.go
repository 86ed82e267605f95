package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/quadro/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = db.Close() })

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err, "Failed to enable foreign keys")

	require.NoError(t, Migrate(context.Background(), db), "Failed to run migrations")
	return db
}

// setupTestDBFile creates a file-based database through InitDB
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "quadro.db")
	db, err := InitDB(context.Background(), path)
	require.NoError(t, err)
	return db, path
}

func date(s string) *time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func createResponsible(t *testing.T, repo *Repository, name, email string) *models.Responsible {
	t.Helper()
	r, err := repo.CreateResponsible(context.Background(), name, email, "Engineer")
	require.NoError(t, err)
	return r
}
