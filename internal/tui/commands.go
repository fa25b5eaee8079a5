package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinedex/internal/bookmark"
	"github.com/mmcdole/cinedex/internal/catalog"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/slice"
)

// Opener hands a link to an external program
type Opener interface {
	Launch(link string) error
}

// Command factories for async operations

// LoadCatalogCmd loads one row (trending or popular) of content type t
func LoadCatalogCmd(agg *catalog.Aggregator, t domain.ContentType, field slice.Field) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var items []domain.CatalogItem
		if field == slice.Popular {
			items = agg.FetchPopular(ctx, t)
		} else {
			items = agg.FetchTrending(ctx, t)
		}
		return CatalogLoadedMsg{Type: t, Field: field, Items: items}
	}
}

// SearchCmd searches movies and series for query under ticket
func SearchCmd(agg *catalog.Aggregator, ticket uint64, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return SearchResultsMsg{
			Ticket:  ticket,
			Query:   query,
			Results: agg.SearchAcrossTypes(ctx, query),
		}
	}
}

// LoadDetailsCmd fetches the full record for item
func LoadDetailsCmd(agg *catalog.Aggregator, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		full, err := agg.FetchDetails(ctx, item.ExternalID, item.Type)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading " + item.Title}
		}
		return DetailsLoadedMsg{Item: full}
	}
}

// ToggleBookmarkCmd adds or removes the bookmark for item
func ToggleBookmarkCmd(store *bookmark.Store, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		on, err := store.Toggle(ctx, item)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating bookmarks"}
		}
		return BookmarkToggledMsg{Item: item, Bookmarked: on}
	}
}

// OpenTrailerCmd opens a trailer search for item in the browser
func OpenTrailerCmd(opener Opener, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Launch(catalog.TrailerSearchURL(item)); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerOpenedMsg{Item: item}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
