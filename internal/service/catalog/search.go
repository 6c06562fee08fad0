package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/provider"
)

const (
	defaultLimit = 20
	maxLimit     = 50
)

// Search returns catalog movies whose title contains query, sorted by title.
// An empty query returns an empty result. Limit is clamped to [1, 50], defaulting to 20.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Movie{}, nil
	}
	limit = clampLimit(limit)

	var all []domain.Movie
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		all, err = s.movies.ListAll(txCtx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.Search: %w", err)
	}

	matches := make([]domain.Movie, 0, len(all))
	for _, m := range all {
		if m.MatchesTitle(query) {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		ti, tj := strings.ToLower(matches[i].Title), strings.ToLower(matches[j].Title)
		if ti != tj {
			return ti < tj
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// SearchRemote searches the metadata provider by title.
func (s *Service) SearchRemote(ctx context.Context, query string) ([]provider.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []provider.MovieSummary{}, nil
	}
	if s.provider == nil {
		return []provider.MovieSummary{}, nil
	}

	hits, err := s.provider.SearchMovies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog.SearchRemote: %w", err)
	}
	if len(hits) > defaultLimit {
		hits = hits[:defaultLimit]
	}
	return hits, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
