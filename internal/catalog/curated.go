package catalog

import "github.com/mmcdole/cinedex/internal/domain"

// Hand-picked IMDb ids served as the trending and popular rows
var (
	curatedMovieIDs = []string{
		"tt15398776", // Oppenheimer
		"tt1517268",  // Barbie
		"tt1160419",  // Dune
		"tt9362722",  // Spider-Man: Across the Spider-Verse
		"tt6718170",  // The Super Mario Bros. Movie
		"tt14998742", // Napoleon
		"tt5090568",  // Killers of the Flower Moon
		"tt15239678", // Dune: Part Two
		"tt9603212",  // Mission: Impossible - Dead Reckoning
		"tt10366206", // John Wick: Chapter 4
		"tt0468569",  // The Dark Knight
		"tt0111161",  // The Shawshank Redemption
		"tt0068646",  // The Godfather
		"tt0137523",  // Fight Club
		"tt0120737",  // The Lord of the Rings: The Fellowship of the Ring
		"tt0109830",  // Forrest Gump
		"tt0167260",  // The Lord of the Rings: The Return of the King
		"tt0110912",  // Pulp Fiction
	}

	curatedSeriesIDs = []string{
		"tt5491994",  // Planet Earth II
		"tt0944947",  // Game of Thrones
		"tt0903747",  // Breaking Bad
		"tt4574334",  // Stranger Things
		"tt7366338",  // Chernobyl
		"tt0306414",  // The Wire
		"tt2861424",  // Rick and Morty
		"tt0413573",  // Grey's Anatomy
		"tt2442560",  // Peaky Blinders
		"tt8111088",  // The Mandalorian
		"tt2356777",  // True Detective
		"tt5180504",  // The Witcher
		"tt7335184",  // You
		"tt14688458", // Shogun
		"tt1190634",  // The Boys
		"tt3581920",  // The Last of Us
		"tt5753856",  // Dark
		"tt0455275",  // Prison Break
	}
)

// CuratedIDs returns a copy of the curated id list for t, in display order
func CuratedIDs(t domain.ContentType) []string {
	var src []string
	switch t {
	case domain.ContentTypeMovie:
		src = curatedMovieIDs
	case domain.ContentTypeSeries:
		src = curatedSeriesIDs
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
