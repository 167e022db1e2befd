package receipt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidKey is returned for attachment keys that would escape the
// storage directory
var ErrInvalidKey = errors.New("invalid attachment key")

// Storage keeps the original receipt files that transactions were scanned from
type Storage interface {
	// Save stores data under key and returns the key to reference it by
	Save(key string, data []byte) (string, error)

	// Get retrieves a stored attachment
	Get(key string) ([]byte, error)

	// Delete removes a stored attachment
	Delete(key string) error
}

// LocalStorage implements the Storage interface using local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// path maps a key to a file directly inside basePath
func (l *LocalStorage) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(l.basePath, key), nil
}

// Save writes an attachment to local storage
func (l *LocalStorage) Save(key string, data []byte) (string, error) {
	path, err := l.path(key)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return key, nil
}

// Get reads an attachment from local storage
func (l *LocalStorage) Get(key string) ([]byte, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes an attachment from local storage
func (l *LocalStorage) Delete(key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
