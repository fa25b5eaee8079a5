package omdb

// itemResponse is the body of a single-item lookup (?i=<id>&plot=full).
// A non-match comes back as {"Response":"False","Error":"..."} with HTTP 200.
type itemResponse struct {
	Title        string `json:"Title"`
	Year         string `json:"Year"`
	Rated        string `json:"Rated,omitempty"`
	Released     string `json:"Released,omitempty"`
	Runtime      string `json:"Runtime,omitempty"`
	Genre        string `json:"Genre,omitempty"`
	Director     string `json:"Director,omitempty"`
	Writer       string `json:"Writer,omitempty"`
	Actors       string `json:"Actors,omitempty"`
	Plot         string `json:"Plot,omitempty"`
	Poster       string `json:"Poster,omitempty"`
	IMDbRating   string `json:"imdbRating,omitempty"`
	IMDbID       string `json:"imdbID"`
	Type         string `json:"Type"`
	TotalSeasons string `json:"totalSeasons,omitempty"`
	Response     string `json:"Response"`
	Error        string `json:"Error,omitempty"`
}

// searchResponse is the body of a search (?s=<query>&type=movie|series)
type searchResponse struct {
	Search       []searchResult `json:"Search"`
	TotalResults string         `json:"totalResults,omitempty"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// searchResult is one list-level entry of a search response
type searchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// isSentinelError reports whether the provider answered with its "no match" convention
func isSentinelError(response, errMsg string) bool {
	return errMsg != "" || response == "False"
}
