package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ahmed-Abdel-karim/cinema/internal/validator"
)

type Genre struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GenrePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func ValidateGenre(v *validator.Validator, genre *Genre) {
	v.Check(genre.Name != "", "name", "must be provided")
	v.Check(len(genre.Name) <= 500, "name", "must not be more than 500 bytes long")
	checkDescription(v, genre.Description)
}

func ValidateGenrePatch(v *validator.Validator, patch *GenrePatch) {
	if patch.Name != nil {
		v.Check(*patch.Name != "", "name", "must not be empty")
		v.Check(len(*patch.Name) <= 500, "name", "must not be more than 500 bytes long")
	}
	if patch.Description != nil {
		checkDescription(v, *patch.Description)
	}
}

type GenreModel struct {
	DB *sql.DB
}

func (m GenreModel) Insert(ctx context.Context, genre *Genre) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt := `INSERT INTO genres (name, description) VALUES ($1, $2) RETURNING id`
	return m.DB.QueryRowContext(ctx, stmt, genre.Name, genre.Description).Scan(&genre.ID)
}

func (m GenreModel) Get(ctx context.Context, id int64) (*Genre, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var genre Genre
	err := m.DB.QueryRowContext(ctx, `SELECT id, name, description FROM genres WHERE id = $1`, id).Scan(&genre.ID, &genre.Name, &genre.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &genre, nil
}

func (m GenreModel) Update(ctx context.Context, id int64, patch GenrePatch) (*Genre, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	stmt := `UPDATE genres
	SET name = COALESCE($1, name),
		description = COALESCE($2, description)
	WHERE id = $3
	RETURNING id, name, description`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var genre Genre
	err := m.DB.QueryRowContext(ctx, stmt, patch.Name, patch.Description, id).Scan(&genre.ID, &genre.Name, &genre.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &genre, nil
}

func (m GenreModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}
	return execOne(ctx, m.DB, `DELETE FROM genres WHERE id = $1`, id)
}

func (m GenreModel) GetAll(ctx context.Context) ([]Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, `SELECT id, name, description FROM genres ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []Genre{}
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
