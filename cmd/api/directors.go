package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ahmed-Abdel-karim/cinema/internal/data"
	"github.com/Ahmed-Abdel-karim/cinema/internal/validator"
)

func (app *application) listDirectorsHandler(w http.ResponseWriter, r *http.Request) {
	directors, err := app.models.Directors.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(directors), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createDirectorHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	director := &data.Director{
		Name:        input.Name,
		Description: input.Description,
	}

	v := validator.New()
	if data.ValidateDirector(v, director); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Directors.Insert(r.Context(), director)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/directors/%d/", director.ID))

	err = app.writeJSON(w, http.StatusCreated, ok(director), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showDirectorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	director, err := app.models.Directors.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateDirectorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.noMatchResponse(w, r)
		return
	}

	var patch data.DirectorPatch
	err = app.readJSON(w, r, &patch)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateDirectorPatch(v, &patch); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	director, err := app.models.Directors.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.noMatchResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteDirectorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.noMatchResponse(w, r)
		return
	}

	err = app.models.Directors.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.noMatchResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, ok(map[string]string{"message": "director successfully deleted"}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
