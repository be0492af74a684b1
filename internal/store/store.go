// Package store is the durable key-value layer behind each room: one
// JSON-shaped state blob per room code. Reads are read-your-writes consistent
// within a room's serialized handler loop, which is all the rooms require.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written. Rooms
// treat it as "create lazily with lobby defaults".
var ErrNotFound = errors.New("store: key not found")

type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous blob.
	Put(ctx context.Context, key string, value []byte) error
}
