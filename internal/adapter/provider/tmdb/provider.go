package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/provider"
)

const (
	maxCast          = 5
	maxSearchResults = 20
	retryDelay       = 500 * time.Millisecond
)

// Provider fetches movie metadata from The Movie Database API.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from TMDBConfig.
func NewProvider(cfg config.TMDBConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "tmdb"),
	}
}

// FetchMovie fetches a movie with its credits.
// Returns nil, nil if the movie is not found (HTTP 404).
func (p *Provider) FetchMovie(ctx context.Context, movieID int) (*provider.MovieResult, error) {
	q := url.Values{}
	q.Set("append_to_response", "credits")

	var m apiMovie
	found, err := p.getJSON(ctx, "/movie/"+strconv.Itoa(movieID), q, &m)
	if err != nil {
		p.log.ErrorContext(ctx, "tmdb fetch failed", slog.Int("movie_id", movieID), slog.String("error", err.Error()))
		return nil, err
	}
	if !found {
		return nil, nil
	}

	result := mapMovie(m)
	p.log.DebugContext(ctx, "tmdb movie fetched",
		slog.Int("movie_id", movieID),
		slog.Int("genres", len(result.Genres)),
		slog.Int("cast", len(result.Cast)),
	)
	return result, nil
}

// SearchMovies returns up to 20 provider hits for a title query.
func (p *Provider) SearchMovies(ctx context.Context, query string) ([]provider.MovieSummary, error) {
	q := url.Values{}
	q.Set("query", query)

	var page apiSearchPage
	found, err := p.getJSON(ctx, "/search/movie", q, &page)
	if err != nil {
		return nil, err
	}
	if !found {
		return []provider.MovieSummary{}, nil
	}

	out := make([]provider.MovieSummary, 0, min(len(page.Results), maxSearchResults))
	for _, hit := range page.Results {
		if len(out) == maxSearchResults {
			break
		}
		out = append(out, provider.MovieSummary{
			ID:          hit.ID,
			Title:       hit.Title,
			ReleaseDate: hit.ReleaseDate,
			PosterPath:  hit.PosterPath,
		})
	}
	return out, nil
}

// getJSON decodes a 200 response into dst. found is false on 404.
func (p *Provider) getJSON(ctx context.Context, path string, q url.Values, dst any) (found bool, err error) {
	if p.apiKey != "" {
		q.Set("api_key", p.apiKey)
	}
	reqURL := p.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("tmdb: create request: %w", redactURL(err, path))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req, path)
	if err != nil {
		return false, fmt.Errorf("tmdb: request failed: %w", redactURL(err, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("tmdb: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("tmdb: read body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, fmt.Errorf("tmdb: decode json: %w", err)
	}
	return true, nil
}

// redactURL drops the request URL from a *url.Error. The query carries the API key.
func redactURL(err error, path string) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return fmt.Errorf("%s %s: %w", uerr.Op, path, uerr.Err)
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, path string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "tmdb retry", slog.String("path", path), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}

func mapMovie(m apiMovie) *provider.MovieResult {
	result := &provider.MovieResult{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		Genres:      make([]string, 0, len(m.Genres)),
		Cast:        make([]string, 0, maxCast),
	}

	for _, g := range m.Genres {
		result.Genres = append(result.Genres, g.Name)
	}
	// TMDB returns cast in billing order.
	for _, c := range m.Credits.Cast {
		if len(result.Cast) == maxCast {
			break
		}
		result.Cast = append(result.Cast, c.Name)
	}
	for _, c := range m.Credits.Crew {
		if c.Job == "Director" {
			result.Director = c.Name
			break
		}
	}
	return result
}
