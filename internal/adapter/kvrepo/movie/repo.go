package movie

import (
	"context"
	"fmt"
	"strconv"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Collection holds one row per catalog entry, partitioned by movie id.
const Collection = "movies"

const (
	attrTitle       = "title"
	attrReleaseDate = "release_date"
	attrOverview    = "overview"
	attrDirector    = "director"
	attrPosterPath  = "poster_path"
	attrGenres      = "genres"
	attrCast        = "cast"
)

// Repo provides catalog persistence.
type Repo struct{}

// New creates a new movie repository.
func New() *Repo {
	return &Repo{}
}

func key(id int) kv.Key {
	return kv.Key{Collection: Collection, Partition: strconv.Itoa(id)}
}

// Exists reports whether a catalog entry for id exists.
func (r *Repo) Exists(ctx context.Context, id int) (bool, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return false, err
	}
	_, ok, err := tx.Get(ctx, key(id))
	if err != nil {
		return false, fmt.Errorf("movie %d: %w", id, err)
	}
	return ok, nil
}

// GetByID returns the catalog entry or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	row, ok, err := tx.Get(ctx, key(id))
	if err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("movie %d: %w", id, domain.ErrNotFound)
	}
	return toDomain(row)
}

// Insert writes m. Callers check absence in the same transaction first;
// the catalog is insert-if-absent only.
func (r *Repo) Insert(ctx context.Context, m domain.Movie) error {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return err
	}
	row, err := toRow(m)
	if err != nil {
		return fmt.Errorf("movie %d: %w", m.ID, err)
	}
	if err := tx.Put(ctx, row); err != nil {
		return fmt.Errorf("movie %d: %w", m.ID, err)
	}
	return nil
}

// ListAll returns every catalog entry. It is a full scan.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Movie, error) {
	tx, err := kv.TxFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.ScanAll(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}

	movies := make([]domain.Movie, 0, len(rows))
	for _, row := range rows {
		m, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toRow(m domain.Movie) (kv.Row, error) {
	genres, err := joinList(m.Genres)
	if err != nil {
		return kv.Row{}, err
	}
	cast, err := joinList(m.Cast)
	if err != nil {
		return kv.Row{}, err
	}
	return kv.Row{
		Key: key(m.ID),
		Attrs: map[string]string{
			attrTitle:       m.Title,
			attrReleaseDate: m.ReleaseDate,
			attrOverview:    m.Overview,
			attrDirector:    m.Director,
			attrPosterPath:  m.PosterPath,
			attrGenres:      genres,
			attrCast:        cast,
		},
	}, nil
}

func toDomain(row kv.Row) (*domain.Movie, error) {
	id, err := strconv.Atoi(row.Key.Partition)
	if err != nil {
		return nil, fmt.Errorf("movie key %q: %w", row.Key.Partition, err)
	}
	genres, err := splitList(row.Attr(attrGenres))
	if err != nil {
		return nil, fmt.Errorf("movie %d genres: %w", id, err)
	}
	cast, err := splitList(row.Attr(attrCast))
	if err != nil {
		return nil, fmt.Errorf("movie %d cast: %w", id, err)
	}
	return &domain.Movie{
		ID:          id,
		Title:       row.Attr(attrTitle),
		ReleaseDate: row.Attr(attrReleaseDate),
		Overview:    row.Attr(attrOverview),
		Director:    row.Attr(attrDirector),
		PosterPath:  row.Attr(attrPosterPath),
		Genres:      genres,
		Cast:        cast,
	}, nil
}
