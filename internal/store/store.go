package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/cinedex/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketBookmarks = []byte("bookmarks")
)

// Open creates the bookmark storage for driver ("bolt", "sqlite" or "memory")
func Open(driver, path string, logger *slog.Logger) (domain.BookmarkStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch driver {
	case "bolt", "":
		if path == "" {
			return nil, fmt.Errorf("bolt storage requires a path")
		}
		return NewBoltStore(path, logger)
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("sqlite storage requires a path")
		}
		return NewSQLiteStore(path, logger)
	case "memory":
		return NewBoltStore("", logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

// BoltStore implements domain.BookmarkStorage using BoltDB.
// With an empty path it runs in memory-only mode (no persistence).
type BoltStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache
	logger *slog.Logger

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

func NewBoltStore(dbPath string, logger *slog.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dbPath == "" {
		// Memory-only mode (no persistence)
		return &BoltStore{cache: make(map[string][]byte), logger: logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBookmarks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("opened bolt storage", "path", dbPath)
	return &BoltStore{db: db, cache: make(map[string][]byte), logger: logger}, nil
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the stored bookmark snapshot, or nil when nothing was saved yet
func (s *BoltStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.get(bucketBookmarks, domain.BookmarksKey)
}

// Save replaces the stored bookmark snapshot
func (s *BoltStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(bucketBookmarks, domain.BookmarksKey, data)
}

// === Generic helpers ===

func (s *BoltStore) get(bucket []byte, key string) ([]byte, error) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return clone(data), nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, nil
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cacheKey, err)
	}

	if data == nil {
		return nil, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return clone(data), nil
}

func (s *BoltStore) set(bucket []byte, key string, value []byte) error {
	cacheKey := string(bucket) + ":" + key
	data := clone(value)

	if s.db != nil {
		// Write to BoltDB before the cache so a failed write is never visible
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return fmt.Errorf("bucket %s missing", bucket)
			}
			return b.Put([]byte(key), data)
		})
		if err != nil {
			s.logger.Error("bolt write failed", "key", cacheKey, "error", err)
			return fmt.Errorf("failed to write %s: %w", cacheKey, err)
		}
	}

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
