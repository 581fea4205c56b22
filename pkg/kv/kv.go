// Package kv provides the durable key-value contract shared by the cart
// mirror and the draft store: string keys, string values, per-entry TTL,
// synchronous operations. Backends are interchangeable and best-effort.
package kv

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is a durable key-value store with per-entry TTL.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(key string) (string, error)
	// Set writes value at key. A zero ttl means the entry never expires.
	Set(key, value string, ttl time.Duration) error
	// Delete removes the entry if present; absence is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}
