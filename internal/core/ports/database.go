// internal/core/ports/database.go
package ports

import "context"

// Database defines the port for connection-lifecycle operations, abstracting
// away the concrete SQLite adapter from callers that need basic store access.
type Database interface {
	Open() error
	Close() error
	Ping(ctx context.Context) error
	Path() string
	Health(ctx context.Context) map[string]interface{}
}
