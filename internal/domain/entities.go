package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContentType distinguishes content types
type ContentType int

const (
	ContentTypeMovie ContentType = iota
	ContentTypeSeries
)

// ContentTypes lists every content type in display order (movies first)
var ContentTypes = []ContentType{ContentTypeMovie, ContentTypeSeries}

// String returns the provider's name for the content type
func (t ContentType) String() string {
	switch t {
	case ContentTypeMovie:
		return "movie"
	case ContentTypeSeries:
		return "series"
	default:
		return "unknown"
	}
}

// Label returns a human-readable plural label
func (t ContentType) Label() string {
	switch t {
	case ContentTypeMovie:
		return "Movies"
	case ContentTypeSeries:
		return "TV Series"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a known content type
func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

// ParseContentType converts "movie" / "series" (and a few aliases) to a ContentType
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film":
		return ContentTypeMovie, nil
	case "series", "tv", "show", "shows":
		return ContentTypeSeries, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (t ContentType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidContentType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ContentType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "movie":
		*t = ContentTypeMovie
	case "series":
		*t = ContentTypeSeries
	default:
		return fmt.Errorf("%w: %q", ErrInvalidContentType, string(text))
	}
	return nil
}

// ItemKey is the structural identity shared by catalog items and bookmarks
type ItemKey struct {
	ExternalID string
	Type       ContentType
}

// CatalogItem is an immutable snapshot of provider data
type CatalogItem struct {
	ExternalID string      // Provider identifier (IMDb id)
	Type       ContentType // Movie or Series
	Title      string      // Display title
	Year       string      // Provider's free-text year or range, e.g. "2011–2019"
	PosterURL  string      // Empty when the provider has no poster
	Rating     float64     // 0-10, 0 when unknown

	// Detail fields, only populated by single-item fetches
	Plot         string
	Runtime      string
	Genres       []string
	Director     string
	Actors       []string
	Released     string
	TotalSeasons int
}

// Key returns the item's structural identity
func (c CatalogItem) Key() ItemKey {
	return ItemKey{ExternalID: c.ExternalID, Type: c.Type}
}

// HasPoster reports whether the item has a usable poster URL
func (c CatalogItem) HasPoster() bool {
	return c.PosterURL != ""
}

// HasDetails reports whether extended fields were populated
func (c CatalogItem) HasDetails() bool {
	return c.Plot != "" || c.Runtime != "" || len(c.Genres) > 0 || c.Director != ""
}

// FormattedRating returns the rating as "8.6" or "" when unknown
func (c CatalogItem) FormattedRating() string {
	if c.Rating <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", c.Rating)
}

// Description returns a short subtitle for list rendering
func (c CatalogItem) Description() string {
	if c.Type == ContentTypeSeries && c.TotalSeasons > 0 {
		if c.TotalSeasons == 1 {
			return fmt.Sprintf("%s · 1 Season", c.Year)
		}
		return fmt.Sprintf("%s · %d Seasons", c.Year, c.TotalSeasons)
	}
	return c.Year
}

// Bookmark is a durable, user-owned snapshot of a catalog item
type Bookmark struct {
	ID         string      // Deterministic, see BookmarkID
	ExternalID string      // Provider identifier
	Type       ContentType // Movie or Series
	Title      string      // Snapshot at bookmark time
	PosterURL  string      // Snapshot at bookmark time, may be empty
	Year       string      // Snapshot at bookmark time
	AddedAt    time.Time   // Informational, not part of identity
}

// BookmarkID derives the deterministic bookmark id for an item, e.g. "movie-tt0111161"
func BookmarkID(t ContentType, externalID string) string {
	return t.String() + "-" + externalID
}

// NewBookmark copies the snapshot fields of a catalog item into a bookmark
func NewBookmark(item CatalogItem) Bookmark {
	return Bookmark{
		ID:         BookmarkID(item.Type, item.ExternalID),
		ExternalID: item.ExternalID,
		Type:       item.Type,
		Title:      item.Title,
		PosterURL:  item.PosterURL,
		Year:       item.Year,
	}
}

// Key returns the bookmark's structural identity
func (b Bookmark) Key() ItemKey {
	return ItemKey{ExternalID: b.ExternalID, Type: b.Type}
}

// CatalogItem converts the bookmark snapshot back into a list item
func (b Bookmark) CatalogItem() CatalogItem {
	return CatalogItem{
		ExternalID: b.ExternalID,
		Type:       b.Type,
		Title:      b.Title,
		Year:       b.Year,
		PosterURL:  b.PosterURL,
	}
}
