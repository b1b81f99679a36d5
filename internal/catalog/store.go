package catalog

import "sync"

// Store holds the current catalog and lets a watcher swap it while requests
// are reading.
type Store struct {
	mu  sync.RWMutex
	cat Catalog
}

func NewStore(c Catalog) *Store {
	return &Store{cat: c}
}

// Snapshot returns the current catalog. Callers must not mutate it.
func (s *Store) Snapshot() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Replace swaps in a new catalog.
func (s *Store) Replace(c Catalog) {
	s.mu.Lock()
	s.cat = c
	s.mu.Unlock()
}
