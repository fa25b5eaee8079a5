package omdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"8.6", 8.6},
		{"10", 10},
		{" 7.1 ", 7.1},
		{"N/A", 0},
		{"", 0},
		{"eight", 0},
		{"NaN", 0},
		{"-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRating(tt.in))
		})
	}
}

func TestNormalizePoster(t *testing.T) {
	assert.Equal(t, "", NormalizePoster("N/A"))
	assert.Equal(t, "", NormalizePoster(""))
	assert.Equal(t, "https://img/x.jpg", NormalizePoster("https://img/x.jpg"))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList("N/A"))
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"Action", "Sci-Fi"}, splitList("Action, Sci-Fi,"))
}

func TestParseSeasons(t *testing.T) {
	assert.Equal(t, 5, parseSeasons("5"))
	assert.Equal(t, 0, parseSeasons("N/A"))
	assert.Equal(t, 0, parseSeasons(""))
}
