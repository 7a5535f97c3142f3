package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fieldreport/mapchat"
)

// Compile-time interface check.
var _ mapchat.Storage = (*File)(nil)

// File is a Storage backed by a single JSON key/value file. Writes are
// atomic (temp file + rename) so a crash mid-write never corrupts the
// state file. Storage writes cannot fail by contract, so I/O errors are
// swallowed after best effort; the worst case is state that does not
// survive a restart, which initialization already tolerates.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewFile loads (or lazily creates) the state file at path.
func NewFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, err
	}
	return f, nil
}

// Get returns the value for key and whether it was present.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Set stores value under key and flushes to disk.
func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.flushLocked()
}

// Remove deletes key and flushes to disk.
func (f *File) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	f.flushLocked()
}

func (f *File) flushLocked() {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp) // best-effort cleanup
	}
}
