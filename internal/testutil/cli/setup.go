package cli

import (
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/quadro/internal/app"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/testutil"
)

// Today is the fixed date CLI tests run on
var Today = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// The app's clock is pinned to Today so derived statuses are stable.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance := app.New(db, app.WithClock(func() time.Time { return Today }))

	return db, appInstance
}

// CreateTestProject wraps testutil.CreateTestProject for CLI tests
func CreateTestProject(t *testing.T, db *sql.DB, name string, status models.Status, plannedStart, plannedEnd, actualStart, actualEnd string) int {
	t.Helper()
	return testutil.CreateTestProject(t, db, name, status, plannedStart, plannedEnd, actualStart, actualEnd)
}

// CreateTestResponsible wraps testutil.CreateTestResponsible for CLI tests
func CreateTestResponsible(t *testing.T, db *sql.DB, name, email string) int {
	t.Helper()
	return testutil.CreateTestResponsible(t, db, name, email)
}
