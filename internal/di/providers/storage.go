package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/mmcdole/cinedex/internal/adapter"
	"github.com/mmcdole/cinedex/internal/bookmark"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/store"
)

// StorageHandle wraps the bookmark storage with shutdown capability.
type StorageHandle struct {
	domain.BookmarkStorage
}

// Shutdown implements do.Shutdownable.
func (h *StorageHandle) Shutdown() error {
	return h.Close()
}

// ProvideStorage provides the durable bookmark storage.
func ProvideStorage(i do.Injector) (*StorageHandle, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	path, err := adapter.ExpandPath(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.Storage.Driver, path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Bookmark storage opened", "driver", cfg.Storage.Driver, "path", path)
	return &StorageHandle{BookmarkStorage: s}, nil
}

// ProvideBookmarkStore provides the bookmark store, loaded from storage.
func ProvideBookmarkStore(i do.Injector) (*bookmark.Store, error) {
	log := do.MustInvoke[*LoggerHandle](i)
	storage, err := do.Invoke[*StorageHandle](i)
	if err != nil {
		return nil, err
	}

	s := bookmark.NewStore(storage, log.Logger)
	items := s.Initialize(context.Background())

	log.Info("Bookmarks loaded", "count", len(items))
	return s, nil
}
