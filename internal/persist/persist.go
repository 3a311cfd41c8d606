// Package persist is the key-value persistence layer the stores flush their
// snapshots to. Values are JSON-encoded; writes are last-write-wins.
package persist

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("no persisted state for key")

// Store is implemented by anything that can hold store snapshots across
// restarts. State written before process end must come back verbatim.
type Store interface {
	// Save overwrites the value under key.
	Save(ctx context.Context, key string, v any) error

	// Load decodes the value under key into out. Returns ErrNotFound when
	// nothing has been saved yet.
	Load(ctx context.Context, key string, out any) error

	// Delete removes the value under key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error
}

// Well-known snapshot keys.
const (
	AuthKey = "auth-storage"
	CartKey = "cart-storage"
)
