package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/provider"
)

type catalogService interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Movie, error)
	SearchRemote(ctx context.Context, query string) ([]provider.MovieSummary, error)
	GetOrFetch(ctx context.Context, movieID int) (*domain.Movie, error)
}

// MovieHandler serves catalog endpoints.
type MovieHandler struct {
	catalog catalogService
	log     *slog.Logger
}

// NewMovieHandler creates a MovieHandler.
func NewMovieHandler(catalog catalogService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{catalog: catalog, log: logger.With("handler", "movie")}
}

type movieResponse struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	Director    string   `json:"director,omitempty"`
	PosterPath  string   `json:"posterPath,omitempty"`
	Genres      []string `json:"genres"`
	Cast        []string `json:"cast"`
}

type movieSummaryResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	PosterPath  string `json:"posterPath,omitempty"`
}

// Search handles GET /api/movies/search?query=&limit=
// A non-numeric limit falls back to the service default.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	movies, err := h.catalog.Search(r.Context(), q.Get("query"), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMovieResponses(movies))
}

// SearchRemote handles GET /api/movies/search/remote?query=
func (h *MovieHandler) SearchRemote(w http.ResponseWriter, r *http.Request) {
	hits, err := h.catalog.SearchRemote(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]movieSummaryResponse, 0, len(hits))
	for _, m := range hits {
		resp = append(resp, movieSummaryResponse{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			PosterPath:  m.PosterPath,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/movies/{id}. Movies missing from the catalog are
// fetched from the provider and stored.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	movie, err := h.catalog.GetOrFetch(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMovieResponse(*movie))
}

func toMovieResponse(m domain.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
		Director:    m.Director,
		PosterPath:  m.PosterPath,
		Genres:      nonNil(m.Genres),
		Cast:        nonNil(m.Cast),
	}
}

func toMovieResponses(movies []domain.Movie) []movieResponse {
	resp := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, toMovieResponse(m))
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
