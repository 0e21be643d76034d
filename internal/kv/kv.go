// Package kv provides the named-blob persistence medium behind the order
// store: a minimal key-value contract with a compressed-file backend and a
// PostgreSQL backend.
package kv

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Get when the key has never been written.
// Callers treat it as "no prior data", not as a fault.
var ErrNotFound = errors.New("kv: key not found")

// Store is a named-blob persistence medium. Put must replace the stored
// value atomically: a concurrent or subsequent Get never observes a
// partially written blob.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
