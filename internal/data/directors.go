package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ahmed-Abdel-karim/cinema/internal/validator"
)

type Director struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DirectorPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func ValidateDirector(v *validator.Validator, director *Director) {
	v.Check(director.Name != "", "name", "must be provided")
	v.Check(len(director.Name) <= 500, "name", "must not be more than 500 bytes long")
	checkDescription(v, director.Description)
}

func ValidateDirectorPatch(v *validator.Validator, patch *DirectorPatch) {
	if patch.Name != nil {
		v.Check(*patch.Name != "", "name", "must not be empty")
		v.Check(len(*patch.Name) <= 500, "name", "must not be more than 500 bytes long")
	}
	if patch.Description != nil {
		checkDescription(v, *patch.Description)
	}
}

type DirectorModel struct {
	DB *sql.DB
}

func (m DirectorModel) Insert(ctx context.Context, director *Director) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt := `INSERT INTO directors (name, description) VALUES ($1, $2) RETURNING id`
	return m.DB.QueryRowContext(ctx, stmt, director.Name, director.Description).Scan(&director.ID)
}

func (m DirectorModel) Get(ctx context.Context, id int64) (*Director, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var director Director
	err := m.DB.QueryRowContext(ctx, `SELECT id, name, description FROM directors WHERE id = $1`, id).Scan(&director.ID, &director.Name, &director.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &director, nil
}

func (m DirectorModel) Update(ctx context.Context, id int64, patch DirectorPatch) (*Director, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	stmt := `UPDATE directors
	SET name = COALESCE($1, name),
		description = COALESCE($2, description)
	WHERE id = $3
	RETURNING id, name, description`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var director Director
	err := m.DB.QueryRowContext(ctx, stmt, patch.Name, patch.Description, id).Scan(&director.ID, &director.Name, &director.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &director, nil
}

func (m DirectorModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}
	return execOne(ctx, m.DB, `DELETE FROM directors WHERE id = $1`, id)
}

func (m DirectorModel) GetAll(ctx context.Context) ([]Director, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, `SELECT id, name, description FROM directors ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	directors := []Director{}
	for rows.Next() {
		var director Director
		if err := rows.Scan(&director.ID, &director.Name, &director.Description); err != nil {
			return nil, err
		}
		directors = append(directors, director)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return directors, nil
}
