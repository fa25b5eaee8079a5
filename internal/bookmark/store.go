package bookmark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Store owns the in-memory bookmark set and writes every mutation through
// to durable storage. A mutation whose save fails leaves memory unchanged.
// Mutations are refused while storage cannot be read, so a transient read
// failure never overwrites the durable snapshot.
type Store struct {
	storage domain.BookmarkStorage
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	items  []domain.Bookmark
	loaded bool
}

// NewStore creates a new bookmark store
func NewStore(storage domain.BookmarkStorage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Initialize loads the persisted set once and returns it.
// Missing or corrupt data yields an empty set. A failed read also yields an
// empty set but is retried by the next call or mutation.
func (s *Store) Initialize(ctx context.Context) []domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoaded(ctx)
	return s.snapshot()
}

// ensureLoaded reads storage until a read succeeds. Caller must hold the write lock.
func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	s.items = nil

	data, err := s.storage.Load(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		s.logger.Warn("failed to read bookmarks", "error", err)
		return err
	}
	s.loaded = true

	items, err := decodeRecords(data)
	if err != nil {
		s.logger.Warn("discarding unreadable bookmarks",
			"error", fmt.Errorf("%w: %w", domain.ErrPersistenceCorrupt, err), "bytes", len(data))
		return nil
	}

	deduped := dedupe(items)
	if dropped := len(items) - len(deduped); dropped > 0 {
		s.logger.Info("collapsed duplicate bookmarks", "dropped", dropped)
	}
	s.items = deduped
	s.logger.Debug("bookmarks loaded", "count", len(s.items))
	return nil
}

// commit persists next and, only on success, makes it the current set.
// Caller must hold the write lock.
func (s *Store) commit(ctx context.Context, op string, next []domain.Bookmark) error {
	data, err := encode(next)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}

	if err := s.storage.Save(ctx, data); err != nil {
		s.logger.Error("failed to persist bookmarks", "op", op, "error", err)
		return fmt.Errorf("%s bookmark: %w", op, err)
	}

	s.items = next
	return nil
}

// Add stores b unless a bookmark for the same (ExternalID, Type) exists
func (s *Store) Add(ctx context.Context, b domain.Bookmark) error {
	if err := validateBookmark(b); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}

	if s.indexOf(b.ExternalID, b.Type) >= 0 {
		return nil
	}

	b.ID = domain.BookmarkID(b.Type, b.ExternalID)
	if b.AddedAt.IsZero() {
		b.AddedAt = s.now().UTC()
	}

	next := append(s.snapshot(), b)
	if err := s.commit(ctx, "add", next); err != nil {
		return err
	}
	s.logger.Info("bookmark added", "id", b.ID, "title", b.Title)
	return nil
}

// Remove deletes the bookmark for (externalID, t); absent entries are a no-op
func (s *Store) Remove(ctx context.Context, externalID string, t domain.ContentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}

	next := make([]domain.Bookmark, 0, len(s.items))
	for _, b := range s.items {
		if b.ExternalID == externalID && b.Type == t {
			continue
		}
		next = append(next, b)
	}
	if len(next) == len(s.items) {
		return nil
	}

	if err := s.commit(ctx, "remove", next); err != nil {
		return err
	}
	s.logger.Info("bookmark removed", "id", domain.BookmarkID(t, externalID))
	return nil
}

// ReplaceAll swaps the whole set for items, keeping the first of any duplicates
func (s *Store) ReplaceAll(ctx context.Context, items []domain.Bookmark) error {
	for i, b := range items {
		if err := validateBookmark(b); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return fmt.Errorf("replace bookmarks: %w", err)
	}

	next := dedupe(items)
	now := s.now().UTC()
	for i := range next {
		if next[i].AddedAt.IsZero() {
			next[i].AddedAt = now
		}
	}

	if err := s.commit(ctx, "replace", next); err != nil {
		return err
	}
	s.logger.Info("bookmarks replaced", "count", len(next))
	return nil
}

// Toggle removes the item's bookmark if present, otherwise adds one.
// It reports whether the item is bookmarked afterwards.
func (s *Store) Toggle(ctx context.Context, item domain.CatalogItem) (bool, error) {
	if s.Contains(item.ExternalID, item.Type) {
		return false, s.Remove(ctx, item.ExternalID, item.Type)
	}
	if err := s.Add(ctx, domain.NewBookmark(item)); err != nil {
		return false, err
	}
	return true, nil
}

// Contains reports whether (externalID, t) is bookmarked
func (s *Store) Contains(externalID string, t domain.ContentType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(externalID, t) >= 0
}

// List returns a copy of all bookmarks in insertion order
func (s *Store) List() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// ByType returns the bookmarks of content type t in insertion order
func (s *Store) ByType(t domain.ContentType) []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Bookmark
	for _, b := range s.items {
		if b.Type == t {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of bookmarks
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// titleIndex implements sahilm/fuzzy.Source over bookmark titles
type titleIndex struct {
	items       []domain.Bookmark
	lowerTitles []string
}

func (idx *titleIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx *titleIndex) Len() int { return len(idx.items) }

// Find returns bookmarks whose titles fuzzy-match query, best match first.
// An empty query returns every bookmark.
func (s *Store) Find(query string) []domain.Bookmark {
	items := s.List()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	idx := &titleIndex{items: items, lowerTitles: make([]string, len(items))}
	for i, b := range items {
		idx.lowerTitles[i] = strings.ToLower(b.Title)
	}

	matches := fuzzy.FindFrom(query, idx)
	out := make([]domain.Bookmark, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}

// Export writes the current set as an indented JSON array
func (s *Store) Export(w io.Writer) error {
	records := make([]record, 0)
	for _, b := range s.List() {
		records = append(records, toRecord(b))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("export bookmarks: %w", err)
	}
	return nil
}

// Import replaces the current set with the JSON array read from r and
// returns the number of bookmarks kept after de-duplication.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return 0, fmt.Errorf("%w: empty import", domain.ErrInvalidBookmark)
	}

	items, err := decodeRecords(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidBookmark, err)
	}

	if err := s.ReplaceAll(ctx, items); err != nil {
		return 0, err
	}
	return s.Len(), nil
}

// indexOf returns the position of (externalID, t) or -1. Caller must hold the lock.
func (s *Store) indexOf(externalID string, t domain.ContentType) int {
	for i, b := range s.items {
		if b.ExternalID == externalID && b.Type == t {
			return i
		}
	}
	return -1
}

// snapshot copies the current set. Caller must hold the lock.
func (s *Store) snapshot() []domain.Bookmark {
	out := make([]domain.Bookmark, len(s.items))
	copy(out, s.items)
	return out
}
