package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a flag has never been written.
var ErrNotFound = errors.New("store: not found")

// Known flag keys.
const (
	// KeyReopen is written on exit; the bootstrap reopens the drill when set.
	KeyReopen = "reopen"

	// KeyLastFile is the exercise file of the last session.
	KeyLastFile = "last_file"

	// KeyFuguesSpeed is the preferred Fugues speed ("1H".."6H").
	KeyFuguesSpeed = "fugues_speed"
)

// FlagRepo is a small key/value store for persisted flags and preferences.
type FlagRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every flag.
	Clear(ctx context.Context) error
}
