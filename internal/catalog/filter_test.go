package catalog

import (
	"testing"

	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	items := []domain.CatalogItem{
		{ExternalID: "a", Title: "Dune: Part Two"},
		{ExternalID: "b", Title: "Breaking Bad"},
		{ExternalID: "c", Title: "Dune"},
		{ExternalID: "d", Title: "Oppenheimer"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps everything", query: "  ", want: []string{"a", "b", "c", "d"}},
		{name: "closest first", query: "dune", want: []string{"c", "a"}},
		{name: "case insensitive", query: "OPPEN", want: []string{"d"}},
		{name: "subsequence", query: "brkbd", want: []string{"b"}},
		{name: "no match", query: "xyz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(items, tt.query)))
		})
	}
}
