package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/cinedex/internal/domain"
)

// Filter narrows an already fetched list to the items whose titles fuzzy-match
// query, closest first. Ties keep their original order. An empty query returns items.
func Filter(items []domain.CatalogItem, query string) []domain.CatalogItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	matches := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better), then by position
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	out := make([]domain.CatalogItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.OriginalIndex])
	}
	return out
}
