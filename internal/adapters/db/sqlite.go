// internal/adapters/db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/emartell/grocery-be/internal/core/ports"
)

// DefaultFileName is used when no database file is configured.
const DefaultFileName = "grocery.db"

// Config holds database configuration
type Config struct {
	// Directory containing the database file. Resolved platform-appropriately
	// when empty, see ResolveStoragePath.
	Directory string
	// File is the database file name, DefaultFileName when empty.
	File        string
	BusyTimeout time.Duration
}

// DefaultConfig returns default database configuration
func DefaultConfig() *Config {
	return &Config{
		File:        DefaultFileName,
		BusyTimeout: 5 * time.Second,
	}
}

// Statement is a single parameterized SQL statement for batch execution.
type Statement struct {
	SQL  string
	Args []interface{}
}

// Database owns the single handle to the SQLite store. Every repository
// operation brackets its work between Open and Close so the handle is never
// left open across calls. Open and Close are both idempotent.
type Database struct {
	path     string
	config   *Config
	conn     *sql.DB
	external bool
	logger   *slog.Logger
}

// Statically assert that *Database implements the Database port.
var _ ports.Database = (*Database)(nil)

// NewDatabase resolves the storage location and returns a closed Database.
// The file itself is created lazily on first Open.
func NewDatabase(config *Config, logger *slog.Logger) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	}

	path, err := ResolveStoragePath(config.Directory, config.File)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage location: %w", err)
	}

	logger.Info("database storage location resolved",
		slog.String("path", path))

	return &Database{
		path:   path,
		config: config,
		logger: logger.With(slog.String("component", "database")),
	}, nil
}

// NewDatabaseWithConn wraps an externally owned handle. Open and Close become
// no-ops for the handle itself; the supplier stays responsible for closing it.
// Used by tests that drive the store through a mocked connection.
func NewDatabaseWithConn(conn *sql.DB, logger *slog.Logger) *Database {
	return &Database{
		path:     ":external:",
		config:   DefaultConfig(),
		conn:     conn,
		external: true,
		logger:   logger.With(slog.String("component", "database")),
	}
}

// ResolveStoragePath determines the platform-appropriate database file path
// and creates the containing directory if absent. Resolution order: explicit
// directory, $XDG_DATA_HOME/grocery, ~/.local/share/grocery, working directory.
func ResolveStoragePath(dir, file string) (string, error) {
	if file == "" {
		file = DefaultFileName
	}

	if dir == "" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dir = filepath.Join(xdg, "grocery")
		} else if home, err := os.UserHomeDir(); err == nil && home != "" {
			dir = filepath.Join(home, ".local", "share", "grocery")
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("failed to determine working directory: %w", err)
			}
			dir = wd
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return filepath.Join(dir, file), nil
}

// Open opens the handle if it is not already open. Foreign-key enforcement is
// re-asserted on every open: SQLite defaults the pragma off per connection.
func (d *Database) Open() error {
	if d.conn != nil {
		return nil
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		d.path, d.config.BusyTimeout.Milliseconds(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One logical connection; concurrent multi-connection access is out of
	// contract for the embedded store.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enforce foreign keys: %w", err)
	}

	d.conn = conn
	return nil
}

// Close closes the handle; a no-op if already closed or externally owned.
func (d *Database) Close() error {
	if d.conn == nil {
		return nil
	}
	if d.external {
		return nil
	}

	err := d.conn.Close()
	d.conn = nil
	if err != nil {
		d.logger.Error("failed to close database", slog.String("error", err.Error()))
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Handle returns the open handle. Only valid between Open and Close.
func (d *Database) Handle() *sql.DB {
	return d.conn
}

// Path returns the resolved database file location.
func (d *Database) Path() string {
	return d.path
}

// Ping verifies the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.Open(); err != nil {
		return err
	}
	defer d.Close()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// CreateTableIfAbsent executes schema-definition text. The DDL carries
// IF NOT EXISTS semantics, so repeated bootstrap is safe.
func (d *Database) CreateTableIfAbsent(ctx context.Context, ddl string) error {
	if err := d.Open(); err != nil {
		return err
	}
	defer d.Close()

	if _, err := d.conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// RunBatch executes the statements in order inside one transaction, committing
// on success and rolling back on the first failure.
func (d *Database) RunBatch(ctx context.Context, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}

	if err := d.Open(); err != nil {
		return err
	}
	defer d.Close()

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			d.rollback(ctx, tx)
			return fmt.Errorf("failed to execute batch statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		d.rollback(ctx, tx)
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// rollback is best-effort: its own failure is logged separately from the
// failure that triggered it so both stay observable in diagnostics.
func (d *Database) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		d.logger.ErrorContext(ctx, "rollback failed",
			slog.String("error", err.Error()))
	}
}

// Health returns basic store diagnostics for the health endpoint.
func (d *Database) Health(ctx context.Context) map[string]interface{} {
	health := map[string]interface{}{
		"path": d.path,
	}

	start := time.Now()
	if err := d.Ping(ctx); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		return health
	}

	health["status"] = "healthy"
	health["response_time"] = time.Since(start).String()
	return health
}
