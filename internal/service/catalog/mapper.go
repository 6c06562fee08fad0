package catalog

import (
	"strings"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/provider"
)

// mapToMovie converts a provider record into a catalog entry keyed by the requested id.
func mapToMovie(movieID int, r *provider.MovieResult) domain.Movie {
	return domain.Movie{
		ID:          movieID,
		Title:       strings.TrimSpace(r.Title),
		ReleaseDate: r.ReleaseDate,
		Overview:    r.Overview,
		Director:    r.Director,
		PosterPath:  r.PosterPath,
		Genres:      compact(r.Genres),
		Cast:        compact(r.Cast),
	}
}

func compact(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
