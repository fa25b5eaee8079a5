package catalog

import (
	"net/url"
	"strings"

	"github.com/mmcdole/cinedex/internal/domain"
)

const youtubeSearchURL = "https://www.youtube.com/results"

// TrailerSearchURL returns a YouTube search for the item's official trailer
func TrailerSearchURL(item domain.CatalogItem) string {
	terms := []string{strings.TrimSpace(item.Title)}
	if year := strings.TrimSpace(item.Year); year != "" {
		terms = append(terms, year)
	}
	terms = append(terms, "official trailer")

	q := url.Values{}
	q.Set("search_query", strings.Join(terms, " "))
	return youtubeSearchURL + "?" + q.Encode()
}
