// Package kv defines the flat key-value primitive the indexed record store
// is built on. Implementations guarantee atomicity of a single key's
// read/write but offer no multi-key transactions.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("kv: key not found")
	// ErrListUnsupported is returned by List on stores without prefix
	// enumeration. Callers fall back to a maintained id registry.
	ErrListUnsupported = errors.New("kv: list not supported")
)

// Store is a flat key/value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns all keys with the given prefix, or ErrListUnsupported.
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
