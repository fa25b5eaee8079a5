package providers

import (
	"github.com/samber/do/v2"

	"github.com/mmcdole/cinedex/internal/adapter"
	"github.com/mmcdole/cinedex/internal/adapter/source"
	"github.com/mmcdole/cinedex/internal/catalog"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/slice"
)

// ProvideMetadataProvider provides the configured metadata provider client.
func ProvideMetadataProvider(i do.Injector) (domain.Provider, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	p, err := source.NewClientFromConfig(cfg, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Metadata provider ready", "type", cfg.Provider.Type, "base_url", cfg.Provider.BaseURL)
	return p, nil
}

// AggregatorHandle wraps the aggregator with shutdown capability.
type AggregatorHandle struct {
	*catalog.Aggregator
}

// Shutdown implements do.Shutdownable.
func (h *AggregatorHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAggregator provides the catalog aggregator.
func ProvideAggregator(i do.Injector) (*AggregatorHandle, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)
	p, err := do.Invoke[domain.Provider](i)
	if err != nil {
		return nil, err
	}

	agg, err := catalog.NewAggregator(p, catalog.Options{
		Concurrency: cfg.Catalog.Concurrency,
		CacheTTL:    cfg.Catalog.CacheTTL,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	return &AggregatorHandle{Aggregator: agg}, nil
}

// Slices groups the per-type browse state and the search results.
type Slices struct {
	ByType map[domain.ContentType]*slice.Slice
	Search *slice.Search
}

// ProvideSlices provides one browse slice per content type.
func ProvideSlices(i do.Injector) (*Slices, error) {
	s := &Slices{
		ByType: make(map[domain.ContentType]*slice.Slice, len(domain.ContentTypes)),
		Search: slice.NewSearch(),
	}
	for _, t := range domain.ContentTypes {
		s.ByType[t] = slice.New(t)
	}
	return s, nil
}
