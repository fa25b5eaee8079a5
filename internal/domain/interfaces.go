package domain

import "context"

// Provider is the metadata source behind the catalog.
// Implementations issue exactly one network call per invocation and never retry.
type Provider interface {
	// FetchByID returns the full record for id, or an error wrapping ErrNotFound
	// when the provider has no match. Network and payload failures are TransportErrors.
	FetchByID(ctx context.Context, id string, t ContentType) (CatalogItem, error)

	// Search returns list-level records (no detail fields) matching query.
	// A provider "no results" answer is an empty slice with a nil error.
	Search(ctx context.Context, query string, t ContentType) ([]CatalogItem, error)
}
