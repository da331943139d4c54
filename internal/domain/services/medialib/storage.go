package medialib

import (
	"context"
	"io"
)

// BinaryStorage is the collaborator holding raw file payloads. Payload
// lifecycle is outside the metadata consistency domain: the core guarantees
// the record, storage failures on cleanup are logged and tolerated.
type BinaryStorage interface {
	// Store writes the payload under key and returns the number of bytes written
	Store(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open opens the payload stored under key
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove drops the payload stored under key
	Remove(ctx context.Context, key string) error
}
