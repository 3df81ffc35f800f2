package http

import (
	"errors"
	"net/http"

	"fleet/internal/pkg/errs"
)

// statusFromError maps core error categories to HTTP status codes: missing
// objects read as 404, invalid input and forbidden transitions as 400,
// conflicts (duplicates, stale versions) as 409, everything else as 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON builds the uniform error body for a failed request.
func errorJSON(err error) (int, ErrorResponse) {
	code := statusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	return code, ErrorResponse{Code: code, Message: message}
}
