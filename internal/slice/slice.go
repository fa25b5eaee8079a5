// Package slice holds per-content-type browse state for presentation.
package slice

import (
	"sync"

	"github.com/mmcdole/cinedex/internal/domain"
)

// Field selects which list a successful load replaces
type Field int

const (
	Trending Field = iota
	Popular
)

func (f Field) String() string {
	switch f {
	case Trending:
		return "trending"
	case Popular:
		return "popular"
	default:
		return "unknown"
	}
}

// AggregationState is a read-only copy of a Slice
type AggregationState struct {
	Trending []domain.CatalogItem
	Popular  []domain.CatalogItem
	Current  *domain.CatalogItem // Item shown on the detail page, nil when none
	Loading  bool
	Error    string // Empty when there is no error
}

// Slice holds the browse state of one content type.
// Loading is cleared by the caller (EndLoad) so concurrent trending and popular
// loads can each report success without racing on it.
type Slice struct {
	typ domain.ContentType

	mu    sync.RWMutex
	state AggregationState
}

// New creates an empty slice for content type t
func New(t domain.ContentType) *Slice {
	return &Slice{typ: t}
}

// Type returns the slice's content type
func (s *Slice) Type() domain.ContentType {
	return s.typ
}

// BeginLoad marks a load in progress and clears the error. Existing lists stay visible.
func (s *Slice) BeginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Error = ""
}

// LoadSucceeded replaces the selected list. Loading is left as is.
func (s *Slice) LoadSucceeded(items []domain.CatalogItem, which Field) {
	cp := cloneItems(items)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch which {
	case Trending:
		s.state.Trending = cp
	case Popular:
		s.state.Popular = cp
	}
}

// LoadFailed records msg. Existing lists are kept.
func (s *Slice) LoadFailed(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = msg
}

// EndLoad clears the loading flag
func (s *Slice) EndLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
}

// SetCurrent sets the item shown on the detail page; nil clears it
func (s *Slice) SetCurrent(item *domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item == nil {
		s.state.Current = nil
		return
	}
	cp := *item
	s.state.Current = &cp
}

// Snapshot returns a copy of the current state
func (s *Slice) Snapshot() AggregationState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := AggregationState{
		Trending: cloneItems(s.state.Trending),
		Popular:  cloneItems(s.state.Popular),
		Loading:  s.state.Loading,
		Error:    s.state.Error,
	}
	if s.state.Current != nil {
		cp := *s.state.Current
		out.Current = &cp
	}
	return out
}

func cloneItems(items []domain.CatalogItem) []domain.CatalogItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CatalogItem, len(items))
	copy(out, items)
	return out
}
