// Package kv provides the single-slot key-value media the project collection is
// persisted in: process memory, an on-device SQLite file, Redis and Postgres.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal byte-valued key-value medium. Set overwrites the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}
