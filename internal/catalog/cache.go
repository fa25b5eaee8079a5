package catalog

import (
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/mmcdole/cinedex/internal/domain"
)

// Cache key prefixes for aggregated results
const (
	// PrefixCurated is the prefix for curated set caches (curated:{type})
	PrefixCurated = "curated:"

	// PrefixSearch is the prefix for search caches (search:{type}:{query})
	PrefixSearch = "search:"

	// PrefixDetails is the prefix for single item caches (details:{type}:{id})
	PrefixDetails = "details:"
)

func curatedKey(t domain.ContentType) string {
	return PrefixCurated + t.String()
}

func searchKey(t domain.ContentType, query string) string {
	return PrefixSearch + t.String() + ":" + strings.ToLower(query)
}

func detailsKey(t domain.ContentType, id string) string {
	return PrefixDetails + t.String() + ":" + id
}

// resultCache is a TTL cache of item lists. A nil *resultCache is a valid, disabled cache.
type resultCache struct {
	items *ristretto.Cache[string, []domain.CatalogItem]
	ttl   time.Duration
}

func newResultCache(ttl time.Duration) (*resultCache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []domain.CatalogItem]{
		NumCounters:        10_000,
		MaxCost:            1_000, // entries, every entry costs 1
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &resultCache{items: c, ttl: ttl}, nil
}

func (c *resultCache) get(key string) ([]domain.CatalogItem, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	return cloneItems(v), true
}

func (c *resultCache) set(key string, items []domain.CatalogItem) {
	if c == nil {
		return
	}
	c.items.SetWithTTL(key, cloneItems(items), 1, c.ttl)
	// Make the write visible to the next get
	c.items.Wait()
}

// invalidate drops every cached entry
func (c *resultCache) invalidate() {
	if c == nil {
		return
	}
	c.items.Clear()
}

func (c *resultCache) close() {
	if c == nil {
		return
	}
	c.items.Close()
}

func cloneItems(items []domain.CatalogItem) []domain.CatalogItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CatalogItem, len(items))
	copy(out, items)
	return out
}
