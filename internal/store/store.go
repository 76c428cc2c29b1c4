// Package store keeps recent conversions in memory so exports and previews
// can be fetched after the initial request, without any database.
//
// Entries expire after a TTL and the store is bounded, so a long-running
// server doesn't accumulate OCR output forever. This is transient state —
// a restart drops everything, which is fine for one-shot downloads.
package store

import (
	"sync"
	"time"

	"github.com/aajarad/mistral-ocr/internal/models"
)

// Store is a bounded, TTL-evicting map of conversions keyed by ID.
type Store struct {
	// Go Pattern: sync.RWMutex allows multiple concurrent readers but
	// exclusive writers — reads vastly outnumber writes here.
	mu    sync.RWMutex
	items map[string]*models.Conversion
	order []string // insertion order, oldest first
	ttl   time.Duration
	limit int
}

// New creates a Store and starts its background eviction loop.
func New(ttl time.Duration, limit int) *Store {
	s := &Store{
		items: make(map[string]*models.Conversion),
		ttl:   ttl,
		limit: limit,
	}
	go s.cleanup()
	return s
}

// Put adds a conversion, evicting the oldest entries when over the limit.
func (s *Store) Put(c *models.Conversion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.items[c.ID] = c

	for s.limit > 0 && len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.items, oldest)
	}
}

// Get returns the conversion for id, if it is still around.
func (s *Store) Get(id string) (*models.Conversion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	return c, ok
}

// List returns up to limit conversions, newest first.
func (s *Store) List(limit int) []*models.Conversion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Conversion, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		if c, ok := s.items[s.order[i]]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of stored conversions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// cleanup periodically removes expired conversions.
func (s *Store) cleanup() {
	// Go Pattern: time.Ticker sends values at regular intervals.
	// Always defer ticker.Stop() to release resources.
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep(time.Now())
	}
}

// sweep drops conversions older than the TTL as of now and compacts the
// insertion-order list. A zero TTL disables expiry.
func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	for _, id := range s.order {
		c, ok := s.items[id]
		if !ok {
			continue
		}
		if s.ttl > 0 && now.Sub(c.CreatedAt) > s.ttl {
			delete(s.items, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}
