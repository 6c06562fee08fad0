package tmdb

// apiMovie is the /movie/{id}?append_to_response=credits payload.
type apiMovie struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	ReleaseDate string     `json:"release_date"`
	Overview    string     `json:"overview"`
	PosterPath  string     `json:"poster_path"`
	Genres      []apiGenre `json:"genres"`
	Credits     apiCredits `json:"credits"`
}

type apiGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type apiCredits struct {
	Cast []apiCastMember `json:"cast"`
	Crew []apiCrewMember `json:"crew"`
}

type apiCastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type apiCrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// apiSearchPage is the /search/movie payload.
type apiSearchPage struct {
	Page    int            `json:"page"`
	Results []apiSearchHit `json:"results"`
}

type apiSearchHit struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}
