package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type document struct {
	Version int                        `json:"version"`
	Blobs   map[string]json.RawMessage `json:"blobs"`
}

// JSONStore keeps every blob in one human-readable JSON file. Writes go to a
// temporary file that is renamed over the original.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{Version: 1, Blobs: make(map[string]json.RawMessage)}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Blobs == nil {
		doc.Blobs = make(map[string]json.RawMessage)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.doc == nil {
		return nil, ErrNotInitialized
	}
	raw, ok := s.doc.Blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrBlobNotFound)
	}
	return append([]byte(nil), raw...), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	if !json.Valid(value) {
		return fmt.Errorf("refusing to store %s: value is not valid JSON", key)
	}
	prev, had := s.doc.Blobs[key]
	s.doc.Blobs[key] = append(json.RawMessage(nil), value...)
	if err := s.save(); err != nil {
		if had {
			s.doc.Blobs[key] = prev
		} else {
			delete(s.doc.Blobs, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
