// Package store implements the durable key/value persistence backing every
// page collection. Each key maps to one JSON file inside the store directory.
// Loading is defensive: a missing key or an undecodable value yields the
// caller's default instead of an error, so a page always mounts with usable
// state.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a string-keyed persistence layer over a single directory.
// Writes are synchronous; there are no transactions across keys.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

// keyPath returns the file holding the given key.
func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the raw bytes stored under key, or false if the key is absent.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return nil, false
	}

	return data, true
}

// Set writes the raw bytes for key, replacing any previous value.
func (s *Store) Set(key string, data []byte) error {
	if err := os.WriteFile(s.keyPath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write store key %s: %w", key, err)
	}

	return nil
}

// Delete removes the value stored under key. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.keyPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete store key %s: %w", key, err)
	}

	return nil
}

// Load decodes the value stored under key into T. A missing key, an
// unreadable file, or a value that does not decode as T all yield def.
func Load[T any](s *Store, key string, def T) T {
	data, ok := s.Get(key)
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return def
	}

	return value
}

// Save encodes value as JSON and writes it under key. Callers invoke Save
// after every successful mutation of the collection the key backs.
func Save[T any](s *Store, key string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store key %s: %w", key, err)
	}

	return s.Set(key, data)
}
