package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// File is a write-through KV backed by a single JSON file. The whole
// map is rewritten on every Set/Remove via a temp file and rename so a
// crash mid-write never leaves a truncated store behind.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFile loads the store at path, creating parent directories as
// needed. A missing file is an empty store; an unreadable or corrupt
// file is logged and treated as empty rather than failing startup.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	f := &File{
		path: path,
		data: make(map[string]string),
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		log.Printf("[Store] Read failed, starting empty: %v\n", err)
		return f, nil
	}
	if err := json.Unmarshal(b, &f.data); err != nil {
		log.Printf("[Store] Corrupt store file, starting empty: %v\n", err)
		f.data = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return f.flush()
}

// flush writes the full map to disk. Caller holds the lock.
func (f *File) flush() error {
	b, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	return os.Rename(tmp, f.path)
}
