package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/kvrepotest"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/movie"
	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
	"github.com/heartmarshall/moviedb-backend/internal/transport/middleware"
)

// testServer runs the full handler tree over an in-memory badger store.
type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T, movies ...domain.Movie) *testServer {
	t.Helper()

	store := kvrepotest.NewStore(t)
	txm := kv.NewTxManager(store)
	repo := movie.New()
	for _, m := range movies {
		err := txm.RunInTx(context.Background(), func(ctx context.Context) error {
			return repo.Insert(ctx, m)
		})
		require.NoError(t, err)
	}

	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.DriverBadger},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "moviedb-test",
			AccessTokenTTL: time.Minute,
			BcryptCost:     bcrypt.MinCost,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         60,
		},
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	logger := slog.New(slog.DiscardHandler)
	srv := httptest.NewServer(NewHandler(cfg, store, limiter, logger))
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv}
}

func (ts *testServer) do(method, path, token string, body any) (int, map[string]any) {
	ts.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ts.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, r)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(ts.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (ts *testServer) register(userID string) string {
	ts.t.Helper()

	status, body := ts.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"userId":   userID,
		"email":    userID + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(ts.t, http.StatusCreated, status, body)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(ts.t, token)
	return token
}

func TestServer_WatchlistFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, domain.Movie{ID: 550, Title: "Fight Club"})
	alice := ts.register("alice")

	status, body := ts.do(http.MethodPost, "/api/lists/watchlist/movies", alice, map[string]int{"movieId": 550})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "applied", body["outcome"])

	status, body = ts.do(http.MethodPost, "/api/lists/watchlist/movies", alice, map[string]int{"movieId": 550})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "already_member", body["outcome"])

	status, body = ts.do(http.MethodPost, "/api/lists/watchlist/movies/550/move", alice, map[string]string{"to": "watched"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "applied", body["outcome"])

	status, body = ts.do(http.MethodGet, "/api/lists/watchlist/movies/550", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["contains"])

	status, body = ts.do(http.MethodGet, "/api/lists/watched/movies/550", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["contains"])
}

func TestServer_UnknownMovieWithoutProvider(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := ts.register("alice")

	status, _ := ts.do(http.MethodPost, "/api/lists/watchlist/movies", alice, map[string]int{"movieId": 9})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.do(http.MethodGet, "/api/movies/9", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_FriendRequestFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := ts.register("alice")
	bob := ts.register("bob")

	status, body := ts.do(http.MethodPost, "/api/friend-requests", alice, map[string]string{"requesteeId": "bob"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "applied", body["outcome"])

	status, body = ts.do(http.MethodPost, "/api/friend-requests", alice, map[string]string{"requesteeId": "bob"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "request_pending", body["outcome"])

	status, body = ts.do(http.MethodPost, "/api/friend-requests/alice/accept", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "applied", body["outcome"])

	status, body = ts.do(http.MethodGet, "/api/friends/bob", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["friends"])

	status, body = ts.do(http.MethodGet, "/api/friends/alice", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["friends"])

	status, body = ts.do(http.MethodDelete, "/api/friends/alice", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "applied", body["outcome"])

	status, body = ts.do(http.MethodGet, "/api/friends/bob", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["friends"])
}

func TestServer_RequestToUnknownUser(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := ts.register("alice")

	status, _ := ts.do(http.MethodPost, "/api/friend-requests", alice, map[string]string{"requesteeId": "ghost"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestServer_InvalidUserIDIsBadRequest(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := ts.register("alice")

	status, body := ts.do(http.MethodPost, "/api/friend-requests", alice, map[string]string{"requesteeId": "bo\x00b"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotNil(t, body["fields"])

	status, _ = ts.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"userId":   "al\x00ice",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_AuthBoundaries(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register("alice")

	status, _ := ts.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.do(http.MethodGet, "/api/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := ts.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"userId":   "alice",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["accessToken"].(string)

	status, body = ts.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["id"])

	status, _ = ts.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"userId":   "alice",
		"email":    "other@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestServer_HealthReportsDriver(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	status, body := ts.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	components, _ := body["components"].(map[string]any)
	store, _ := components["store"].(map[string]any)
	assert.Equal(t, "badger", store["driver"])
}
