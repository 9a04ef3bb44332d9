package storage

import (
	"sync"

	"apartment-map/models"
)

// Store holds the current in-memory collection of listings for one
// session. Nothing is persisted automatically; exports and linked-file
// writes are explicit. The original page mutates a single array on one
// thread, but the viewer server runs handlers concurrently, so mutations
// are guarded here.
type Store struct {
	mu       sync.RWMutex
	listings []models.Listing
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a freshly loaded collection, discarding the old one.
func (s *Store) ReplaceAll(listings []models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append([]models.Listing(nil), listings...)
}

// Append adds one listing at the end of the collection.
func (s *Store) Append(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append(s.listings, l)
}

// Snapshot returns a copy of the collection in insertion order. Callers
// may keep or mutate the copy freely.
func (s *Store) Snapshot() []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Listing(nil), s.listings...)
}

// Len reports the number of stored listings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}
