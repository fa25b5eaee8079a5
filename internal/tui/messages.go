package tui

import (
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/slice"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg carries one row of one content type
type CatalogLoadedMsg struct {
	Type  domain.ContentType
	Field slice.Field
	Items []domain.CatalogItem
}

// SearchResultsMsg carries the results of the search started with Ticket
type SearchResultsMsg struct {
	Ticket  uint64
	Query   string
	Results []domain.CatalogItem
}

// DetailsLoadedMsg carries the full record of one item
type DetailsLoadedMsg struct {
	Item domain.CatalogItem
}

// BookmarkToggledMsg reports the bookmark state of Item after a toggle
type BookmarkToggledMsg struct {
	Item       domain.CatalogItem
	Bookmarked bool
}

// TrailerOpenedMsg signals that the trailer search was handed to the browser
type TrailerOpenedMsg struct {
	Item domain.CatalogItem
}

// TickMsg drives the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
