package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/kvrepotest"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/membership"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/movie"
	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockCatalog struct {
	GetOrFetchFunc func(ctx context.Context, movieID int) (*domain.Movie, error)
}

func (m *mockCatalog) GetOrFetch(ctx context.Context, movieID int) (*domain.Movie, error) {
	return m.GetOrFetchFunc(ctx, movieID)
}

type mockMembershipRepo struct {
	ContainsFunc     func(ctx context.Context, userID string, list domain.ListName, movieID int) (bool, error)
	AddFunc          func(ctx context.Context, userID string, list domain.ListName, movieID int) error
	RemoveFunc       func(ctx context.Context, userID string, list domain.ListName, movieID int) error
	ListMovieIDsFunc func(ctx context.Context, userID string, list domain.ListName) ([]int, error)
}

func (m *mockMembershipRepo) Contains(ctx context.Context, userID string, list domain.ListName, movieID int) (bool, error) {
	return m.ContainsFunc(ctx, userID, list, movieID)
}

func (m *mockMembershipRepo) Add(ctx context.Context, userID string, list domain.ListName, movieID int) error {
	return m.AddFunc(ctx, userID, list, movieID)
}

func (m *mockMembershipRepo) Remove(ctx context.Context, userID string, list domain.ListName, movieID int) error {
	return m.RemoveFunc(ctx, userID, list, movieID)
}

func (m *mockMembershipRepo) ListMovieIDs(ctx context.Context, userID string, list domain.ListName) ([]int, error) {
	return m.ListMovieIDsFunc(ctx, userID, list)
}

type mockTxManager struct{}

func (mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type fixture struct {
	svc *Service
	tm  *kv.TxManager
}

func newFixture(t *testing.T, catalog catalogService) *fixture {
	t.Helper()
	tm := kvrepotest.NewTxManager(t)
	if catalog == nil {
		catalog = &mockCatalog{}
	}
	return &fixture{
		svc: NewService(slog.New(slog.DiscardHandler), membership.New(), movie.New(), catalog, tm),
		tm:  tm,
	}
}

func (f *fixture) seedMovies(t *testing.T, ids ...int) {
	t.Helper()
	repo := movie.New()
	require.NoError(t, f.tm.RunInTx(context.Background(), func(ctx context.Context) error {
		for _, id := range ids {
			if err := repo.Insert(ctx, domain.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)}); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (f *fixture) contains(t *testing.T, list domain.ListName, movieID int) bool {
	t.Helper()
	ok, err := f.svc.Contains(context.Background(), MembershipInput{UserID: "alice", List: list, MovieID: movieID})
	require.NoError(t, err)
	return ok
}

func in(list domain.ListName, movieID int) MembershipInput {
	return MembershipInput{UserID: "alice", List: list, MovieID: movieID}
}

func move(from, to domain.ListName, movieID int) MoveInput {
	return MoveInput{UserID: "alice", From: from, To: to, MovieID: movieID}
}

// ---------------------------------------------------------------------------
// Add / Remove
// ---------------------------------------------------------------------------

// Scenario: adding the same movie twice yields a no-op the second time.
func TestService_Add_Twice(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 10)
	ctx := context.Background()

	first, err := f.svc.Add(ctx, in(domain.ListWatchlist, 10))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, first)

	second, err := f.svc.Add(ctx, in(domain.ListWatchlist, 10))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyMember, second)

	ids, err := f.svc.ListAll(ctx, "alice", domain.ListWatchlist)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, ids)
}

func TestService_Add_MissingCatalogEntry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	outcome, err := f.svc.Add(context.Background(), in(domain.ListWatchlist, 99))

	require.ErrorIs(t, err, domain.ErrMissingReference)
	assert.Empty(t, outcome)
	assert.False(t, f.contains(t, domain.ListWatchlist, 99))
}

func TestService_Add_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.svc.Add(context.Background(), MembershipInput{UserID: "", List: "favourites", MovieID: 0})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
}

func TestService_InvalidUserIDIsValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, MembershipInput{UserID: "bo\x00b", List: domain.ListWatchlist, MovieID: 1})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrStorage)

	_, err = f.svc.Move(ctx, MoveInput{UserID: "bo\x00b", From: domain.ListWatchlist, To: domain.ListWatched, MovieID: 1})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.ListAll(ctx, "bo\x00b", domain.ListWatchlist)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Add_StorageFailure(t *testing.T) {
	t.Parallel()

	repo := &mockMembershipRepo{
		ContainsFunc: func(_ context.Context, _ string, _ domain.ListName, _ int) (bool, error) {
			return false, fmt.Errorf("get: %w", domain.ErrStorage)
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), repo, movie.New(), &mockCatalog{}, mockTxManager{})

	outcome, err := svc.Add(context.Background(), in(domain.ListWatched, 1))

	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, outcome)
}

func TestService_Remove(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 10)
	ctx := context.Background()

	outcome, err := f.svc.Remove(ctx, in(domain.ListWatched, 10))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotMember, outcome)

	_, err = f.svc.Add(ctx, in(domain.ListWatched, 10))
	require.NoError(t, err)

	outcome, err = f.svc.Remove(ctx, in(domain.ListWatched, 10))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)
	assert.False(t, f.contains(t, domain.ListWatched, 10))
}

// ---------------------------------------------------------------------------
// Move
// ---------------------------------------------------------------------------

// Scenario: a movie moves from watchlist to watched atomically.
func TestService_Move(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 7)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, in(domain.ListWatchlist, 7))
	require.NoError(t, err)

	outcome, err := f.svc.Move(ctx, move(domain.ListWatchlist, domain.ListWatched, 7))

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)
	assert.False(t, f.contains(t, domain.ListWatchlist, 7))
	assert.True(t, f.contains(t, domain.ListWatched, 7))
}

// Scenario: repeating a completed move is a no-op.
func TestService_Move_AlreadyMoved(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 7)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, in(domain.ListWatched, 7))
	require.NoError(t, err)

	outcome, err := f.svc.Move(ctx, move(domain.ListWatchlist, domain.ListWatched, 7))

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyMoved, outcome)
	assert.True(t, f.contains(t, domain.ListWatched, 7))
	assert.False(t, f.contains(t, domain.ListWatchlist, 7))
}

func TestService_Move_ReconcilesDuplicate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 7)
	ctx := context.Background()

	require.NoError(t, f.tm.RunInTx(ctx, func(ctx context.Context) error {
		repo := membership.New()
		if err := repo.Add(ctx, "alice", domain.ListWatchlist, 7); err != nil {
			return err
		}
		return repo.Add(ctx, "alice", domain.ListWatched, 7)
	}))

	outcome, err := f.svc.Move(ctx, move(domain.ListWatchlist, domain.ListWatched, 7))

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)
	assert.False(t, f.contains(t, domain.ListWatchlist, 7))
	assert.True(t, f.contains(t, domain.ListWatched, 7))
}

func TestService_Move_MissingCatalogEntry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.svc.Move(context.Background(), move(domain.ListWatchlist, domain.ListWatched, 5))

	require.ErrorIs(t, err, domain.ErrMissingReference)
	assert.False(t, f.contains(t, domain.ListWatched, 5))
}

func TestService_Move_SameList(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.svc.Move(context.Background(), move(domain.ListWatched, domain.ListWatched, 5))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Move_FailureLeavesSourceIntact(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 7)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, in(domain.ListWatchlist, 7))
	require.NoError(t, err)

	members := membership.New()
	removeErr := fmt.Errorf("delete: %w", domain.ErrStorage)
	failing := &mockMembershipRepo{
		ContainsFunc: members.Contains,
		AddFunc:      members.Add,
		RemoveFunc: func(_ context.Context, _ string, _ domain.ListName, _ int) error {
			return removeErr
		},
		ListMovieIDsFunc: members.ListMovieIDs,
	}
	svc := NewService(slog.New(slog.DiscardHandler), failing, movie.New(), &mockCatalog{}, f.tm)

	_, err = svc.Move(ctx, move(domain.ListWatchlist, domain.ListWatched, 7))

	require.ErrorIs(t, err, domain.ErrStorage)
	assert.True(t, f.contains(t, domain.ListWatchlist, 7))
	assert.False(t, f.contains(t, domain.ListWatched, 7))
}

// ---------------------------------------------------------------------------
// AddMovie
// ---------------------------------------------------------------------------

func TestService_AddMovie_FetchesIntoCatalog(t *testing.T) {
	t.Parallel()

	var f *fixture
	catalog := &mockCatalog{
		GetOrFetchFunc: func(ctx context.Context, movieID int) (*domain.Movie, error) {
			f.seedMovies(t, movieID)
			return &domain.Movie{ID: movieID}, nil
		},
	}
	f = newFixture(t, catalog)

	outcome, err := f.svc.AddMovie(context.Background(), in(domain.ListWatchlist, 550))

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)
	assert.True(t, f.contains(t, domain.ListWatchlist, 550))
}

func TestService_AddMovie_CatalogError(t *testing.T) {
	t.Parallel()

	catalogErr := errors.New("movie not found in external provider")
	f := newFixture(t, &mockCatalog{
		GetOrFetchFunc: func(_ context.Context, _ int) (*domain.Movie, error) {
			return nil, catalogErr
		},
	})

	_, err := f.svc.AddMovie(context.Background(), in(domain.ListWatchlist, 550))

	require.ErrorIs(t, err, catalogErr)
	assert.False(t, f.contains(t, domain.ListWatchlist, 550))
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestService_ListMovies_SkipsMissingCatalogRows(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedMovies(t, 3, 1)
	ctx := context.Background()

	require.NoError(t, f.tm.RunInTx(ctx, func(ctx context.Context) error {
		repo := membership.New()
		for _, id := range []int{3, 2, 1} {
			if err := repo.Add(ctx, "alice", domain.ListWatched, id); err != nil {
				return err
			}
		}
		return nil
	}))

	movies, err := f.svc.ListMovies(ctx, "alice", domain.ListWatched)

	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, 3, movies[1].ID)
}

func TestService_ListAll_Empty(t *testing.T) {
	t.Parallel()

	ids, err := newFixture(t, nil).svc.ListAll(context.Background(), "bob", domain.ListWatchlist)

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestService_ListAll_UnknownList(t *testing.T) {
	t.Parallel()

	_, err := newFixture(t, nil).svc.ListAll(context.Background(), "bob", "favourites")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
