package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ahmed-Abdel-karim/cinema/internal/data"
	"github.com/Ahmed-Abdel-karim/cinema/internal/validator"
)

func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()

	filters := data.MovieFilters{
		DirectorID: app.readID(qs, "director_id", v),
		GenreID:    app.readID(qs, "genre_id", v),
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movies, err := app.models.Movies.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(movies), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Trailer     string  `json:"trailer"`
		Year        int32   `json:"year"`
		Rating      float64 `json:"rating"`
		DirectorID  int64   `json:"director_id"`
		GenreID     int64   `json:"genre_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie := &data.Movie{
		Title:       input.Title,
		Description: input.Description,
		Trailer:     input.Trailer,
		Year:        input.Year,
		Rating:      input.Rating,
		DirectorID:  input.DirectorID,
		GenreID:     input.GenreID,
	}

	v := validator.New()
	if data.ValidateMovie(v, movie); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Movies.Insert(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d/", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, ok(movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.noMatchResponse(w, r)
		return
	}

	var patch data.MoviePatch
	err = app.readJSON(w, r, &patch)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateMoviePatch(v, &patch); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movie, err := app.models.Movies.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.noMatchResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.noMatchResponse(w, r)
		return
	}

	err = app.models.Movies.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.noMatchResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(map[string]string{"message": "movie successfully deleted"}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
