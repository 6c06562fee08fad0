package provider

// MovieResult is the structured movie record from a metadata provider.
type MovieResult struct {
	ID          int
	Title       string
	ReleaseDate string
	Overview    string
	PosterPath  string
	Director    string
	Genres      []string
	Cast        []string
}

// MovieSummary is one hit of a provider-side title search.
type MovieSummary struct {
	ID          int
	Title       string
	ReleaseDate string
	PosterPath  string
}
