package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

func (app *application) logError(r *http.Request, err error) {
	properties := map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		properties["sqlstate"] = string(pqErr.Code)
		properties["constraint"] = pqErr.Constraint
	}
	app.logger.PrintError(err, properties)
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"status": "error", "error": message}
	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// noMatchResponse reports an update or delete whose id matched no row.
func (app *application) noMatchResponse(w http.ResponseWriter, r *http.Request) {
	message := "no record matched the given id"
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	app.errorResponse(w, r, http.StatusTooManyRequests, message)
}
