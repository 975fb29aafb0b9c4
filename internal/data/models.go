package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrRecordNotFound is returned when no row has the requested id.
	ErrRecordNotFound = errors.New("record not found")
)

// queryTimeout bounds every statement issued by the models.
const queryTimeout = 3 * time.Second

type MovieStore interface {
	Insert(ctx context.Context, movie *Movie) error
	Get(ctx context.Context, id int64) (*Movie, error)
	Update(ctx context.Context, id int64, patch MoviePatch) (*Movie, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context, filters MovieFilters) ([]Movie, error)
}

type DirectorStore interface {
	Insert(ctx context.Context, director *Director) error
	Get(ctx context.Context, id int64) (*Director, error)
	Update(ctx context.Context, id int64, patch DirectorPatch) (*Director, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]Director, error)
}

type GenreStore interface {
	Insert(ctx context.Context, genre *Genre) error
	Get(ctx context.Context, id int64) (*Genre, error)
	Update(ctx context.Context, id int64, patch GenrePatch) (*Genre, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]Genre, error)
}

type Model struct {
	Movies    MovieStore
	Directors DirectorStore
	Genres    GenreStore
}

func NewModel(db *sql.DB) Model {
	return Model{
		Movies:    MovieModel{DB: db},
		Directors: DirectorModel{DB: db},
		Genres:    GenreModel{DB: db},
	}
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db *sql.DB, stmt string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected != 1 {
		return ErrRecordNotFound
	}
	return nil
}
