package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"medialib/internal/domain"
	medialibSvc "medialib/internal/domain/services/medialib"
)

// Store keeps payloads as plain files under a root directory, fanned out by
// the first two characters of the key so no single directory grows unbounded.
type Store struct {
	root string
}

// NewStore creates a new disk store rooted at dir, creating it if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: dir}, nil
}

var _ medialibSvc.BinaryStorage = (*Store)(nil)

func (s *Store) path(key string) (string, error) {
	// Keys are generated UUIDs; reject anything that could escape the root
	if len(key) < 2 || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", &domain.ValidationError{Message: fmt.Sprintf("invalid storage key %q", key)}
	}
	return filepath.Join(s.root, key[:2], key), nil
}

// Store writes the payload under key and returns the number of bytes written.
// The write goes to a temp file first and renames into place so a partial
// write never becomes visible under the key.
func (s *Store) Store(ctx context.Context, key string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dst, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create storage shard: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp payload: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("write payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("close payload: %w", err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("publish payload: %w", err)
	}

	return written, nil
}

// Open opens the payload stored under key
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("payload %s not found", key)}
		}
		return nil, fmt.Errorf("open payload: %w", err)
	}
	return f, nil
}

// Remove drops the payload stored under key. Removing a key that was never
// stored, or was already removed, is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove payload: %w", err)
	}

	// Best effort: drop the shard directory when it empties out
	if entries, err := os.ReadDir(filepath.Dir(p)); err == nil && len(entries) == 0 {
		_ = os.Remove(filepath.Dir(p))
	}

	return nil
}
