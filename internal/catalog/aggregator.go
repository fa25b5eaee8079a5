package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/cinedex/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight provider calls per fan-out
const DefaultConcurrency = 8

// Options tunes the aggregator
type Options struct {
	Concurrency int           // Max concurrent provider calls per fan-out, <= 0 uses DefaultConcurrency
	CacheTTL    time.Duration // How long results are reused, 0 disables caching
}

// Aggregator composes provider calls into curated lists and cross-type searches.
// Individual failures are logged and dropped; list operations never return an error.
type Aggregator struct {
	provider domain.Provider
	opts     Options
	cache    *resultCache
	logger   *slog.Logger
}

// NewAggregator creates a new catalog aggregator
func NewAggregator(provider domain.Provider, opts Options, logger *slog.Logger) (*Aggregator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	cache, err := newResultCache(opts.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}

	return &Aggregator{
		provider: provider,
		opts:     opts,
		cache:    cache,
		logger:   logger,
	}, nil
}

// Close releases the result cache
func (a *Aggregator) Close() {
	a.cache.close()
}

// Invalidate drops all cached results so the next call refetches
func (a *Aggregator) Invalidate() {
	a.cache.invalidate()
	a.logger.Debug("catalog cache invalidated")
}

// FetchCuratedSet fetches every curated id of type t concurrently.
// The result keeps curated order and omits ids that failed or were not found.
func (a *Aggregator) FetchCuratedSet(ctx context.Context, t domain.ContentType) []domain.CatalogItem {
	key := curatedKey(t)
	if items, ok := a.cache.get(key); ok {
		a.logger.Debug("curated set cache hit", "type", t, "count", len(items))
		return items
	}

	ids := CuratedIDs(t)
	items, failed := a.fetchAll(ctx, ids, t)

	if failed == 0 {
		a.cache.set(key, items)
	}
	a.logger.Info("curated set loaded", "type", t, "count", len(items), "failed", failed)
	return items
}

// fetchAll fetches ids concurrently. Each task writes only its own slot, and the
// merge walks the slots in input order so completion order never leaks into the result.
func (a *Aggregator) fetchAll(ctx context.Context, ids []string, t domain.ContentType) ([]domain.CatalogItem, int) {
	type slot struct {
		item domain.CatalogItem
		ok   bool
	}
	slots := make([]slot, len(ids))

	var g errgroup.Group
	g.SetLimit(a.opts.Concurrency)

	for i, id := range ids {
		g.Go(func() error {
			item, err := a.provider.FetchByID(ctx, id, t)
			if err != nil {
				a.logFetchFailure(id, t, err)
				return nil // failures are per item, never fail the group
			}
			slots[i] = slot{item: item, ok: true}
			return nil
		})
	}
	_ = g.Wait()

	items := make([]domain.CatalogItem, 0, len(ids))
	failed := 0
	for _, s := range slots {
		if !s.ok {
			failed++
			continue
		}
		items = append(items, s.item)
	}
	return items, failed
}

func (a *Aggregator) logFetchFailure(id string, t domain.ContentType, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		a.logger.Debug("curated item not found", "id", id, "type", t, "error", err)
		return
	}
	a.logger.Warn("curated item fetch failed", "id", id, "type", t, "error", err)
}

// FetchTrending returns the trending row for t
func (a *Aggregator) FetchTrending(ctx context.Context, t domain.ContentType) []domain.CatalogItem {
	return a.FetchCuratedSet(ctx, t)
}

// FetchPopular returns the popular row for t. It currently serves the same curated set as trending.
func (a *Aggregator) FetchPopular(ctx context.Context, t domain.ContentType) []domain.CatalogItem {
	return a.FetchCuratedSet(ctx, t)
}

// SearchAcrossTypes searches movies and series concurrently and returns
// movies followed by series, each in provider order. A blank query returns nil
// without calling the provider; a failed branch contributes no results.
func (a *Aggregator) SearchAcrossTypes(ctx context.Context, query string) []domain.CatalogItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	results := make([][]domain.CatalogItem, len(domain.ContentTypes))

	var g errgroup.Group
	for i, t := range domain.ContentTypes {
		g.Go(func() error {
			items, err := a.Search(ctx, query, t)
			if err != nil {
				a.logger.Warn("search branch failed", "query", query, "type", t, "error", err)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.CatalogItem
	for _, items := range results {
		merged = append(merged, items...)
	}
	a.logger.Debug("search complete", "query", query, "count", len(merged))
	if merged == nil {
		merged = []domain.CatalogItem{}
	}
	return merged
}

// Search runs a single-type provider search. Unlike SearchAcrossTypes it
// reports provider failures to the caller.
func (a *Aggregator) Search(ctx context.Context, query string, t domain.ContentType) ([]domain.CatalogItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := searchKey(t, query)
	if items, ok := a.cache.get(key); ok {
		return items, nil
	}

	items, err := a.provider.Search(ctx, query, t)
	if err != nil {
		return nil, err
	}
	a.cache.set(key, items)
	return items, nil
}

// FetchDetails fetches the full record for one item.
// domain.ErrNotFound and transport errors are returned as is.
func (a *Aggregator) FetchDetails(ctx context.Context, id string, t domain.ContentType) (domain.CatalogItem, error) {
	key := detailsKey(t, id)
	if items, ok := a.cache.get(key); ok && len(items) == 1 {
		return items[0], nil
	}

	item, err := a.provider.FetchByID(ctx, id, t)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	a.cache.set(key, []domain.CatalogItem{item})
	return item, nil
}
