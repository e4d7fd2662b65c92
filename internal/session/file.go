package session

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// JSON files on disk, one per key, under <root>/<session>/.
// No locking; one writer per session is assumed.

const fileExt = ".json"

// FileBackend stores each key as a file in the session directory.
type FileBackend struct {
	dir string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates (if needed) the directory for session under root.
func NewFileBackend(root, session string) (*FileBackend, error) {
	if err := ValidateName(session); err != nil {
		return nil, fmt.Errorf("file backend: %w", err)
	}
	dir := filepath.Join(root, url.PathEscape(session))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir is the directory holding this session's files.
func (f *FileBackend) Dir() string { return f.dir }

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+fileExt)
}

func (f *FileBackend) Get(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

func (f *FileBackend) Set(key string, value []byte) error {
	if err := os.WriteFile(f.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (f *FileBackend) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func (f *FileBackend) Clear() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove: %w", err)
		}
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }
