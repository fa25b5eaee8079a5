package domain

import "context"

// BookmarksKey is the single durable key holding the serialized bookmark set
const BookmarksKey = "bookmarks"

// BookmarkStorage is the durable key-value surface behind the bookmark store.
// The whole set is read once at startup and overwritten wholesale on every mutation.
type BookmarkStorage interface {
	// Load returns the stored snapshot, or nil with a nil error when nothing was saved yet
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, data []byte) error

	// Close releases the underlying handle
	Close() error
}
