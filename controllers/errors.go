package controllers

import (
	"errors"
	"net/http"

	"github.com/yeremiapane/restaurant-reservation/services"
)

var ErrNoPermission = errors.New("you don't have permission for this action")

// statusForError maps core errors onto HTTP status codes. Availability
// conflicts are the expected failure and get their own code so the UI
// can offer alternative tables instead of a generic error page.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
