package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/quadro/internal/database"
	"github.com/thenoetrevino/quadro/internal/models"
)

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	return <-outC
}

// SetupTestDB creates an in-memory database with full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// CreateTestResponsible inserts a responsible and returns its ID
func CreateTestResponsible(t *testing.T, db *sql.DB, name, email string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO responsibles (name, email, role) VALUES (?, ?, 'Engineer')", name, email)
	if err != nil {
		t.Fatalf("Failed to create test responsible: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestProject inserts a project row as-is, bypassing status derivation, and returns its ID.
// Dates use the YYYY-MM-DD form; empty strings are stored as NULL.
func CreateTestProject(t *testing.T, db *sql.DB, name string, status models.Status, plannedStart, plannedEnd, actualStart, actualEnd string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(), `
		INSERT INTO projects (name, status, planned_start, planned_end, actual_start, actual_end)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))`,
		name, string(status), plannedStart, plannedEnd, actualStart, actualEnd)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}
