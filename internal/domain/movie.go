package domain

import "strings"

// Movie is a shared catalog entry keyed by the provider's numeric movie id.
// Entries are written once and never overwritten or deleted.
type Movie struct {
	ID          int
	Title       string
	ReleaseDate string
	Overview    string
	Director    string
	PosterPath  string
	Genres      []string
	Cast        []string
}

// MatchesTitle reports whether the title contains query, ignoring case.
// An empty query matches every movie.
func (m Movie) MatchesTitle(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), q)
}

// ListMembership records that a movie belongs to one of a user's lists.
type ListMembership struct {
	UserID  string
	List    ListName
	MovieID int
}
