package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps every blob in a single JSON file, rewritten on each
// write. It stands in for a real database in local setups.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entries map[string]json.RawMessage
}

// OpenFile loads the store from path. A missing file yields an empty
// store; the file is created on the first Put.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{path: path, entries: make(map[string]json.RawMessage)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&fs.entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fs, nil
}

// Get returns a copy of the blob stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, ErrNoSuchKey
	}
	return append([]byte(nil), data...), nil
}

// Put stores data under key and rewrites the backing file.
// data must be a valid JSON document.
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("put %s: not a JSON document", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = append(json.RawMessage(nil), data...)
	return s.save()
}

// Delete removes key and rewrites the backing file.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.save()
}

// save rewrites the whole file. Callers must hold mu.
func (s *FileStore) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(s.entries); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return nil
}
