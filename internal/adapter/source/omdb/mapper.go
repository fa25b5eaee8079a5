package omdb

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmcdole/cinedex/internal/domain"
)

// notAvailable is the provider's placeholder for missing values
const notAvailable = "N/A"

// ParseRating converts the provider's textual rating ("8.6", "N/A", "") to a number.
// Anything unparseable is 0.
func ParseRating(rating string) float64 {
	rating = strings.TrimSpace(rating)
	if rating == "" || rating == notAvailable {
		return 0
	}
	v, err := strconv.ParseFloat(rating, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// NormalizePoster returns the poster URL, or "" when absent or "N/A"
func NormalizePoster(poster string) string {
	return clean(poster)
}

// clean trims s and maps the "N/A" placeholder to ""
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}

// splitList splits "A, B, C" into its parts
func splitList(s string) []string {
	s = clean(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseSeasons converts totalSeasons to an int, 0 when unknown
func parseSeasons(s string) int {
	n, err := strconv.Atoi(clean(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// mapContentType converts the provider's Type field
func mapContentType(s string) (domain.ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return domain.ContentTypeMovie, true
	case "series":
		return domain.ContentTypeSeries, true
	default:
		return 0, false
	}
}

// mapItem converts a single-item lookup to a detailed catalog item
func mapItem(r itemResponse, t domain.ContentType) domain.CatalogItem {
	return domain.CatalogItem{
		ExternalID:   strings.TrimSpace(r.IMDbID),
		Type:         t,
		Title:        strings.TrimSpace(r.Title),
		Year:         clean(r.Year),
		PosterURL:    NormalizePoster(r.Poster),
		Rating:       ParseRating(r.IMDbRating),
		Plot:         clean(r.Plot),
		Runtime:      clean(r.Runtime),
		Genres:       splitList(r.Genre),
		Director:     clean(r.Director),
		Actors:       splitList(r.Actors),
		Released:     clean(r.Released),
		TotalSeasons: parseSeasons(r.TotalSeasons),
	}
}

// mapSearchResults converts list-level search entries, keeping provider order.
// Entries of another content type (the provider occasionally mixes in episodes or games)
// and entries without an id are skipped.
func mapSearchResults(results []searchResult, t domain.ContentType) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(results))
	for _, r := range results {
		rt, ok := mapContentType(r.Type)
		if !ok || rt != t {
			continue
		}
		id := strings.TrimSpace(r.IMDbID)
		if id == "" {
			continue
		}
		items = append(items, domain.CatalogItem{
			ExternalID: id,
			Type:       t,
			Title:      strings.TrimSpace(r.Title),
			Year:       clean(r.Year),
			PosterURL:  NormalizePoster(r.Poster),
		})
	}
	return items
}
