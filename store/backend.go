// Package store persists entity collections as whole JSON documents and keeps
// a process-wide in-memory copy of each collection.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a Backend when no document exists for a key
var ErrKeyNotFound = errors.New("store: key not found")

// Backend is a durable key to JSON document store. A Write replaces the whole document atomically.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Name() string
}
