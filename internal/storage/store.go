// Package storage provides the emission primitive and file access the
// generator uses to write assets and cache records into the build output.
package storage

import (
	"context"
	"errors"
)

// Store reads and writes named assets below an output root. Names are
// slash-separated paths relative to that root.
type Store interface {
	// ReadFile returns the contents of name. Returns ErrNotFound if it does not exist.
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// Emit writes data to name, creating parent directories. A reader never
	// observes a partially written file.
	Emit(ctx context.Context, name string, data []byte) error

	// Remove deletes name. Removing a missing asset is not an error.
	Remove(ctx context.Context, name string) error

	// Exists reports whether name exists.
	Exists(ctx context.Context, name string) (bool, error)
}

// ErrNotFound is returned when an asset doesn't exist.
type ErrNotFound struct {
	Name string
}

func (e ErrNotFound) Error() string {
	return "asset not found: " + e.Name
}

// IsNotFound returns true if any error in the chain is ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
