package catalog

import (
	"net/url"
	"testing"

	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailerSearchURL(t *testing.T) {
	tests := []struct {
		name string
		item domain.CatalogItem
		want string
	}{
		{
			name: "title and year",
			item: domain.CatalogItem{Title: "Dune: Part Two", Year: "2024"},
			want: "Dune: Part Two 2024 official trailer",
		},
		{
			name: "series range",
			item: domain.CatalogItem{Title: "Breaking Bad", Year: "2008–2013"},
			want: "Breaking Bad 2008–2013 official trailer",
		},
		{
			name: "missing year",
			item: domain.CatalogItem{Title: "Untitled"},
			want: "Untitled official trailer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := TrailerSearchURL(tt.item)

			u, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "https", u.Scheme)
			assert.Equal(t, "www.youtube.com", u.Host)
			assert.Equal(t, "/results", u.Path)
			assert.Equal(t, tt.want, u.Query().Get("search_query"))
		})
	}
}
