package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/service/watchlist"
)

type listService interface {
	ListMovies(ctx context.Context, userID string, list domain.ListName) ([]domain.Movie, error)
	Contains(ctx context.Context, in watchlist.MembershipInput) (bool, error)
	AddMovie(ctx context.Context, in watchlist.MembershipInput) (domain.Outcome, error)
	Remove(ctx context.Context, in watchlist.MembershipInput) (domain.Outcome, error)
	Move(ctx context.Context, in watchlist.MoveInput) (domain.Outcome, error)
}

// ListHandler serves the authenticated user's watchlist and watched list.
type ListHandler struct {
	lists listService
	log   *slog.Logger
}

// NewListHandler creates a ListHandler.
func NewListHandler(lists listService, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, log: logger.With("handler", "list")}
}

type addMovieRequest struct {
	MovieID int `json:"movieId"`
}

type moveRequest struct {
	To string `json:"to"`
}

type containsResponse struct {
	Contains bool `json:"contains"`
}

// List handles GET /api/lists/{list}.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	movies, err := h.lists.ListMovies(r.Context(), userID, domain.ListName(r.PathValue("list")))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMovieResponses(movies))
}

// Add handles POST /api/lists/{list}/movies. Unknown movies are fetched
// into the catalog first.
func (h *ListHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req addMovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.lists.AddMovie(r.Context(), watchlist.MembershipInput{
		UserID:  userID,
		List:    domain.ListName(r.PathValue("list")),
		MovieID: req.MovieID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeOutcome(w, outcome)
}

// Contains handles GET /api/lists/{list}/movies/{movieId}.
func (h *ListHandler) Contains(w http.ResponseWriter, r *http.Request) {
	in, ok := h.membershipFromPath(w, r)
	if !ok {
		return
	}

	contains, err := h.lists.Contains(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, containsResponse{Contains: contains})
}

// Remove handles DELETE /api/lists/{list}/movies/{movieId}.
func (h *ListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	in, ok := h.membershipFromPath(w, r)
	if !ok {
		return
	}

	outcome, err := h.lists.Remove(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeOutcome(w, outcome)
}

// Move handles POST /api/lists/{list}/movies/{movieId}/move.
func (h *ListHandler) Move(w http.ResponseWriter, r *http.Request) {
	in, ok := h.membershipFromPath(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.lists.Move(r.Context(), watchlist.MoveInput{
		UserID:  in.UserID,
		From:    in.List,
		To:      domain.ListName(req.To),
		MovieID: in.MovieID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeOutcome(w, outcome)
}

func (h *ListHandler) membershipFromPath(w http.ResponseWriter, r *http.Request) (watchlist.MembershipInput, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return watchlist.MembershipInput{}, false
	}
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		handleError(w, r, h.log, err)
		return watchlist.MembershipInput{}, false
	}
	return watchlist.MembershipInput{
		UserID:  userID,
		List:    domain.ListName(r.PathValue("list")),
		MovieID: movieID,
	}, true
}
