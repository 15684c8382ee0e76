// Package cache memoizes per-save extraction results across batch runs, so a
// rescan of a large library only decodes files that changed.
package cache

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/Ravikin/dno-stats/pkg/report"
)

// Store is a pebble-backed cache of extracted save entries. Keys bind the
// save's path, size, and mtime, so any change to the file misses the cache.
type Store struct {
	db *pebble.DB
}

// Open opens or creates the cache at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &Store{db: db}, nil
}

// Key identifies one version of one save file.
func Key(path string, size int64, mtimeNanos int64) []byte {
	return []byte(fmt.Sprintf("%s|%d|%d", path, size, mtimeNanos))
}

// Get returns the cached entry for key, or (nil, false) on a miss. A corrupt
// cached value is treated as a miss.
func (s *Store) Get(key []byte) (*report.SaveEntry, bool) {
	data, closer, err := s.db.Get(key)
	if err != nil {
		return nil, false
	}
	defer closer.Close()

	var entry report.SaveEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

// Put stores the entry under key.
func (s *Store) Put(key []byte, entry *report.SaveEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return s.db.Set(key, data, pebble.NoSync)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
