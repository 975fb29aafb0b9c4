package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ahmed-Abdel-karim/cinema/internal/data"
	"github.com/Ahmed-Abdel-karim/cinema/internal/validator"
)

func (app *application) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Genres.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(genres), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genre := &data.Genre{
		Name:        input.Name,
		Description: input.Description,
	}

	v := validator.New()
	if data.ValidateGenre(v, genre); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Genres.Insert(r.Context(), genre)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/genres/%d/", genre.ID))

	err = app.writeJSON(w, http.StatusCreated, ok(genre), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	genre, err := app.models.Genres.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.noMatchResponse(w, r)
		return
	}

	var patch data.GenrePatch
	err = app.readJSON(w, r, &patch)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateGenrePatch(v, &patch); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	genre, err := app.models.Genres.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.noMatchResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.noMatchResponse(w, r)
		return
	}

	err = app.models.Genres.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.noMatchResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(map[string]string{"message": "genre successfully deleted"}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
