package rest

import (
	"context"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/provider"
	"github.com/heartmarshall/moviedb-backend/internal/service/auth"
	"github.com/heartmarshall/moviedb-backend/internal/service/watchlist"
)

type authServiceMock struct {
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

type profileServiceMock struct {
	GetProfileFunc func(ctx context.Context) (*domain.User, error)
}

func (m *profileServiceMock) GetProfile(ctx context.Context) (*domain.User, error) {
	return m.GetProfileFunc(ctx)
}

type catalogServiceMock struct {
	SearchFunc       func(ctx context.Context, query string, limit int) ([]domain.Movie, error)
	SearchRemoteFunc func(ctx context.Context, query string) ([]provider.MovieSummary, error)
	GetOrFetchFunc   func(ctx context.Context, movieID int) (*domain.Movie, error)
}

func (m *catalogServiceMock) Search(ctx context.Context, query string, limit int) ([]domain.Movie, error) {
	return m.SearchFunc(ctx, query, limit)
}

func (m *catalogServiceMock) SearchRemote(ctx context.Context, query string) ([]provider.MovieSummary, error) {
	return m.SearchRemoteFunc(ctx, query)
}

func (m *catalogServiceMock) GetOrFetch(ctx context.Context, movieID int) (*domain.Movie, error) {
	return m.GetOrFetchFunc(ctx, movieID)
}

type listServiceMock struct {
	ListMoviesFunc func(ctx context.Context, userID string, list domain.ListName) ([]domain.Movie, error)
	ContainsFunc   func(ctx context.Context, in watchlist.MembershipInput) (bool, error)
	AddMovieFunc   func(ctx context.Context, in watchlist.MembershipInput) (domain.Outcome, error)
	RemoveFunc     func(ctx context.Context, in watchlist.MembershipInput) (domain.Outcome, error)
	MoveFunc       func(ctx context.Context, in watchlist.MoveInput) (domain.Outcome, error)
}

func (m *listServiceMock) ListMovies(ctx context.Context, userID string, list domain.ListName) ([]domain.Movie, error) {
	return m.ListMoviesFunc(ctx, userID, list)
}

func (m *listServiceMock) Contains(ctx context.Context, in watchlist.MembershipInput) (bool, error) {
	return m.ContainsFunc(ctx, in)
}

func (m *listServiceMock) AddMovie(ctx context.Context, in watchlist.MembershipInput) (domain.Outcome, error) {
	return m.AddMovieFunc(ctx, in)
}

func (m *listServiceMock) Remove(ctx context.Context, in watchlist.MembershipInput) (domain.Outcome, error) {
	return m.RemoveFunc(ctx, in)
}

func (m *listServiceMock) Move(ctx context.Context, in watchlist.MoveInput) (domain.Outcome, error) {
	return m.MoveFunc(ctx, in)
}

type friendshipServiceMock struct {
	AreFriendsFunc         func(ctx context.Context, userID, otherID string) (bool, error)
	RemoveMirroredEdgeFunc func(ctx context.Context, a, b string) (domain.Outcome, error)
	ListFriendsFunc        func(ctx context.Context, userID string) ([]string, error)
}

func (m *friendshipServiceMock) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	return m.AreFriendsFunc(ctx, userID, otherID)
}

func (m *friendshipServiceMock) RemoveMirroredEdge(ctx context.Context, a, b string) (domain.Outcome, error) {
	return m.RemoveMirroredEdgeFunc(ctx, a, b)
}

func (m *friendshipServiceMock) ListFriends(ctx context.Context, userID string) ([]string, error) {
	return m.ListFriendsFunc(ctx, userID)
}

type requestServiceMock struct {
	SendFunc         func(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error)
	AcceptFunc       func(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error)
	DeclineFunc      func(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error)
	ListIncomingFunc func(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListOutgoingFunc func(ctx context.Context, userID string) ([]domain.FriendRequest, error)
}

func (m *requestServiceMock) Send(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error) {
	return m.SendFunc(ctx, requesterID, requesteeID)
}

func (m *requestServiceMock) Accept(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error) {
	return m.AcceptFunc(ctx, requesterID, requesteeID)
}

func (m *requestServiceMock) Decline(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error) {
	return m.DeclineFunc(ctx, requesterID, requesteeID)
}

func (m *requestServiceMock) ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return m.ListIncomingFunc(ctx, userID)
}

func (m *requestServiceMock) ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return m.ListOutgoingFunc(ctx, userID)
}
