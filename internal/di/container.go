// Package di provides dependency injection configuration for cinedex.
package di

import (
	"github.com/samber/do/v2"

	"github.com/mmcdole/cinedex/internal/adapter"
	"github.com/mmcdole/cinedex/internal/bookmark"
	"github.com/mmcdole/cinedex/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Services are built lazily, so commands that never touch the provider do not need an API key.
func NewContainer(cfg *adapter.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideLauncher)

	// Catalog layer
	do.Provide(injector, providers.ProvideMetadataProvider)
	do.Provide(injector, providers.ProvideAggregator)
	do.Provide(injector, providers.ProvideSlices)

	// Bookmark layer
	do.Provide(injector, providers.ProvideStorage)
	do.Provide(injector, providers.ProvideBookmarkStore)

	return injector
}

// Bootstrap builds everything the interactive browser needs.
// It fails early on a missing API key or an unopenable bookmark database.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*providers.LoggerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.AggregatorHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.Slices](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*bookmark.Store](injector); err != nil {
		return err
	}
	return nil
}
