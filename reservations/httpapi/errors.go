package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
)

const (
	msgNotFound   = "Entity not found"
	msgBadRequest = "Bad request"
	msgConflict   = "Conflict"
	msgInternal   = "Internal server error"
)

// statusFor maps the failure kinds of the reservation lifecycle to HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, msgNotFound

	case errors.Is(err, core.ErrInvalidState),
		errors.Is(err, core.ErrInvalidArgument),
		errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest, msgBadRequest

	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict, msgConflict

	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (h handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)

	if status >= http.StatusInternalServerError {
		h.logError(r, err, status)
	} else {
		h.logWarn(r, err, status)
	}

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		detail = msgInternal
	}

	writeJSON(w, status, ErrorResponseDto{
		Message:       message,
		DetailMessage: detail,
		ErrorTime:     time.Now().UTC(),
	})
}
