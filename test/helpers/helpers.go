// test/helpers/helpers.go
package helpers

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/emartell/grocery-be/internal/adapters/db"
	"github.com/emartell/grocery-be/internal/core/domain"
)

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a Database over a temporary SQLite file. The file lives
// in t.TempDir, so cleanup is automatic.
func SetupTestDB(t *testing.T) *db.Database {
	t.Helper()

	database, err := db.NewDatabase(&db.Config{
		Directory:   t.TempDir(),
		File:        "test.db",
		BusyTimeout: 5 * time.Second,
	}, TestLogger())
	require.NoError(t, err, "could not create test database")

	return database
}

// SetupMockDB creates a Database over a sqlmock connection for simulating
// engine failures that a real store will not produce on demand.
func SetupMockDB(t *testing.T) (*db.Database, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "could not create sqlmock")
	t.Cleanup(func() { conn.Close() })

	return db.NewDatabaseWithConn(conn, TestLogger()), mock
}

// MockConn exposes the raw handle for expectations that bypass the wrapper.
func MockConn(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "could not create sqlmock")
	t.Cleanup(func() { conn.Close() })

	return conn, mock
}

// CreateTestProduct returns an unpersisted product fixture.
func CreateTestProduct() *domain.Product {
	return &domain.Product{
		Name:  "Orange Juice",
		Stock: 12,
		Date:  time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Price: decimal.NewFromFloat(3.49),
	}
}

// CreateTestList returns an unpersisted grocery list fixture.
func CreateTestList() *domain.GroceryList {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	return &domain.GroceryList{
		Name:      "Weekend shopping",
		CreatedOn: &now,
		Color:     "#2e8b57",
	}
}

// CreateTestItem returns an unpersisted list item fixture referencing the
// given parents.
func CreateTestItem(listID, productID int64) *domain.GroceryListItem {
	return &domain.GroceryListItem{
		GroceryListID: listID,
		ProductID:     productID,
		Amount:        3,
	}
}
