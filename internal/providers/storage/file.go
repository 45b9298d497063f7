package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/deskfolio/deskos/internal/shared/paths"
	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

// File stores each key as a JSON file below a root directory
type File struct {
	root string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewFile creates a file store rooted at root, creating the directory
func NewFile(root string) (*File, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required for the file driver")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &File{
		root: root,
		lock: flock.New(paths.LockPath(root)),
	}, nil
}

// Root returns the storage directory
func (f *File) Root() string {
	return f.root
}

// Get reads the blob stored under key
func (f *File) Get(key string) ([]byte, error) {
	path, err := paths.BlobFile(f.root, key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the blob under key. Readers see either the old or the new
// blob, never a partial write.
func (f *File) Set(key string, value []byte) error {
	path, err := paths.BlobFile(f.root, key)
	if err != nil {
		return err
	}

	return f.withLock(func() error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create blob directory: %w", err)
		}
		if err := atomic.WriteFile(path, bytes.NewReader(value)); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes the blob under key. Missing keys are not an error.
func (f *File) Delete(key string) error {
	path, err := paths.BlobFile(f.root, key)
	if err != nil {
		return err
	}

	return f.withLock(func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

func (f *File) withLock(fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("acquire storage lock: %w", err)
	}
	defer f.lock.Unlock()

	return fn()
}
