package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ahmed-Abdel-karim/cinema/internal/validator"
)

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int32   `json:"year"`
	Rating      float64 `json:"rating"`
	DirectorID  int64   `json:"director_id"`
	GenreID     int64   `json:"genre_id"`
}

// MoviePatch carries the fields of an update request. Nil fields are left
// untouched.
type MoviePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int32   `json:"year"`
	Rating      *float64 `json:"rating"`
	DirectorID  *int64   `json:"director_id"`
	GenreID     *int64   `json:"genre_id"`
}

// MovieFilters are equality predicates for GetAll. Zero means "any".
type MovieFilters struct {
	DirectorID int64
	GenreID    int64
}

func ValidateMovie(v *validator.Validator, movie *Movie) {
	v.Check(movie.Title != "", "title", "must be provided")
	v.Check(movie.Year != 0, "year", "must be provided")
	v.Check(movie.DirectorID != 0, "director_id", "must be provided")
	v.Check(movie.GenreID != 0, "genre_id", "must be provided")

	checkTitle(v, movie.Title)
	checkDescription(v, movie.Description)
	checkTrailer(v, movie.Trailer)
	checkYear(v, movie.Year)
	checkRating(v, movie.Rating)
	checkReference(v, "director_id", movie.DirectorID)
	checkReference(v, "genre_id", movie.GenreID)
}

// ValidateMoviePatch applies the create rules to the fields present in patch.
func ValidateMoviePatch(v *validator.Validator, patch *MoviePatch) {
	if patch.Title != nil {
		v.Check(*patch.Title != "", "title", "must not be empty")
		checkTitle(v, *patch.Title)
	}
	if patch.Description != nil {
		checkDescription(v, *patch.Description)
	}
	if patch.Trailer != nil {
		checkTrailer(v, *patch.Trailer)
	}
	if patch.Year != nil {
		checkYear(v, *patch.Year)
	}
	if patch.Rating != nil {
		checkRating(v, *patch.Rating)
	}
	if patch.DirectorID != nil {
		checkReference(v, "director_id", *patch.DirectorID)
	}
	if patch.GenreID != nil {
		checkReference(v, "genre_id", *patch.GenreID)
	}
}

func checkTitle(v *validator.Validator, title string) {
	v.Check(len(title) <= 500, "title", "must not be more than 500 bytes long")
}

func checkDescription(v *validator.Validator, description string) {
	v.Check(len(description) <= 5000, "description", "must not be more than 5000 bytes long")
}

func checkTrailer(v *validator.Validator, trailer string) {
	v.Check(trailer == "" || validator.Matches(trailer, validator.URLRX), "trailer", "must be a valid http(s) URL")
}

func checkYear(v *validator.Validator, year int32) {
	v.Check(year >= 1888, "year", "must be greater than 1888")
	v.Check(year <= int32(time.Now().Year()), "year", "must not be in the future")
}

func checkRating(v *validator.Validator, rating float64) {
	v.Check(rating >= 0 && rating <= 10, "rating", "must be between 0 and 10")
}

func checkReference(v *validator.Validator, key string, id int64) {
	v.Check(id > 0, key, "must be a positive integer")
}

type MovieModel struct {
	DB *sql.DB
}

func (m MovieModel) Insert(ctx context.Context, movie *Movie) error {
	stmt := `INSERT INTO movies (title, description, trailer, year, rating, director_id, genre_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`
	args := []any{movie.Title, movie.Description, movie.Trailer, movie.Year, movie.Rating, movie.DirectorID, movie.GenreID}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return m.DB.QueryRowContext(ctx, stmt, args...).Scan(&movie.ID)
}

func (m MovieModel) Get(ctx context.Context, id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	stmt := `SELECT id, title, description, trailer, year, rating, director_id, genre_id
	FROM movies
	WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var movie Movie
	err := m.DB.QueryRowContext(ctx, stmt, id).Scan(movie.dest()...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &movie, nil
}

// Update applies patch to the movie with the given id in a single statement
// and returns the stored result.
func (m MovieModel) Update(ctx context.Context, id int64, patch MoviePatch) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	stmt := `UPDATE movies
	SET title = COALESCE($1, title),
		description = COALESCE($2, description),
		trailer = COALESCE($3, trailer),
		year = COALESCE($4, year),
		rating = COALESCE($5, rating),
		director_id = COALESCE($6, director_id),
		genre_id = COALESCE($7, genre_id)
	WHERE id = $8
	RETURNING id, title, description, trailer, year, rating, director_id, genre_id`
	args := []any{patch.Title, patch.Description, patch.Trailer, patch.Year, patch.Rating, patch.DirectorID, patch.GenreID, id}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var movie Movie
	err := m.DB.QueryRowContext(ctx, stmt, args...).Scan(movie.dest()...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &movie, nil
}

func (m MovieModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}
	return execOne(ctx, m.DB, `DELETE FROM movies WHERE id = $1`, id)
}

func (m MovieModel) GetAll(ctx context.Context, filters MovieFilters) ([]Movie, error) {
	stmt := `SELECT id, title, description, trailer, year, rating, director_id, genre_id
	FROM movies
	WHERE (director_id = $1 OR $1 = 0)
	AND (genre_id = $2 OR $2 = 0)
	ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, stmt, filters.DirectorID, filters.GenreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		var movie Movie
		if err := rows.Scan(movie.dest()...); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

func (movie *Movie) dest() []any {
	return []any{
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Trailer,
		&movie.Year,
		&movie.Rating,
		&movie.DirectorID,
		&movie.GenreID,
	}
}
