package rest

import (
	"net/http"

	"github.com/heartmarshall/moviedb-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Movie   *MovieHandler
	List    *ListHandler
	Friend  *FriendHandler
	Metrics http.Handler
}

// NewRouter mounts health checks and /metrics bare, and every /api route behind
// api. authLimit wraps only the credential endpoints.
func NewRouter(h Handlers, api, authLimit middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	apiMux := http.NewServeMux()

	apiMux.Handle("POST /api/auth/register", authLimit.ThenFunc(h.Auth.Register))
	apiMux.Handle("POST /api/auth/login", authLimit.ThenFunc(h.Auth.Login))
	apiMux.HandleFunc("GET /api/me", h.Auth.Me)

	apiMux.HandleFunc("GET /api/movies/search", h.Movie.Search)
	apiMux.HandleFunc("GET /api/movies/search/remote", h.Movie.SearchRemote)
	apiMux.HandleFunc("GET /api/movies/{id}", h.Movie.Get)

	apiMux.HandleFunc("GET /api/lists/{list}", h.List.List)
	apiMux.HandleFunc("POST /api/lists/{list}/movies", h.List.Add)
	apiMux.HandleFunc("GET /api/lists/{list}/movies/{movieId}", h.List.Contains)
	apiMux.HandleFunc("DELETE /api/lists/{list}/movies/{movieId}", h.List.Remove)
	apiMux.HandleFunc("POST /api/lists/{list}/movies/{movieId}/move", h.List.Move)

	apiMux.HandleFunc("GET /api/friends", h.Friend.ListFriends)
	apiMux.HandleFunc("GET /api/friends/{friendId}", h.Friend.AreFriends)
	apiMux.HandleFunc("DELETE /api/friends/{friendId}", h.Friend.Unfriend)

	apiMux.HandleFunc("POST /api/friend-requests", h.Friend.SendRequest)
	apiMux.HandleFunc("GET /api/friend-requests/incoming", h.Friend.Incoming)
	apiMux.HandleFunc("GET /api/friend-requests/outgoing", h.Friend.Outgoing)
	apiMux.HandleFunc("POST /api/friend-requests/{requesterId}/accept", h.Friend.Accept)
	apiMux.HandleFunc("POST /api/friend-requests/{requesterId}/decline", h.Friend.Decline)

	mux.Handle("/api/", api(apiMux))

	return mux
}
