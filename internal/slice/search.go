package slice

import (
	"sync"

	"github.com/mmcdole/cinedex/internal/domain"
)

// Search holds the latest search results. Every search takes a ticket from
// Begin; only the newest ticket may publish, so a slow earlier search can
// never overwrite the results of a later one.
type Search struct {
	mu      sync.RWMutex
	seq     uint64
	query   string
	results []domain.CatalogItem
	loading bool
}

// NewSearch creates an empty search slice
func NewSearch() *Search {
	return &Search{}
}

// Begin starts a search for query and returns its ticket
func (s *Search) Begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.query = query
	s.loading = true
	return s.seq
}

// Complete publishes items for ticket. It reports false and discards the
// items when a newer search has begun since.
func (s *Search) Complete(ticket uint64, items []domain.CatalogItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		return false
	}
	s.results = cloneItems(items)
	s.loading = false
	return true
}

// Reset clears the query and results and invalidates outstanding tickets
func (s *Search) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.query = ""
	s.results = nil
	s.loading = false
}

// Query returns the query of the latest search
func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results returns a copy of the published results
func (s *Search) Results() []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.results)
}

// Loading reports whether the latest search is still outstanding
func (s *Search) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
