// Package storage is the client's durable key/value store: the terminal
// counterpart of a browser's localStorage. Values are opaque byte slices
// written whole; there are no partial updates.
package storage

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repository.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository is a durable key/value store.
//
// Get returns (nil, nil) for a missing key. Set replaces the whole value.
// Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
