package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
)

const (
	logMsgRequestFailed = "reservation request failed"
	logAttrMethod       = "method"
	logAttrPath         = "path"
	logAttrStatus       = "status"
	logAttrError        = "error"
)

// ReservationService is the reservation lifecycle as used by the handlers.
type ReservationService interface {
	GetReservationByID(ctx context.Context, id core.ReservationID) (core.Reservation, error)
	SearchAllByFilter(ctx context.Context, filter core.SearchFilter) ([]core.Reservation, error)
	CreateReservation(ctx context.Context, input core.Reservation) (core.Reservation, error)
	UpdateReservation(ctx context.Context, id core.ReservationID, input core.Reservation) (core.Reservation, error)
	CancelReservation(ctx context.Context, id core.ReservationID) error
	ApproveReservation(ctx context.Context, id core.ReservationID) (core.Reservation, error)
}

type handler struct {
	service ReservationService
	logger  eventstore.ContextualLogger
}

func (h handler) getReservationByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseReservationID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reservation, err := h.service.GetReservationByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reservationDtoFrom(reservation))
}

func (h handler) searchReservations(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilterFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reservations, err := h.service.SearchAllByFilter(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reservationDtosFrom(reservations))
}

func (h handler) createReservation(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeReservation(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if dto.ID != nil {
		h.writeError(w, r, fmt.Errorf("%w: id must be empty", ErrMalformedRequest))
		return
	}

	input, err := dto.toReservation()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.service.CreateReservation(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reservationDtoFrom(created))
}

func (h handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := parseReservationID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := decodeReservation(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	input, err := dto.toReservation()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.service.UpdateReservation(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reservationDtoFrom(updated))
}

func (h handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := parseReservationID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.service.CancelReservation(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h handler) approveReservation(w http.ResponseWriter, r *http.Request) {
	id, err := parseReservationID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	approved, err := h.service.ApproveReservation(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reservationDtoFrom(approved))
}

func decodeReservation(r *http.Request) (ReservationDto, error) {
	var dto ReservationDto

	if err := jsoniter.ConfigFastest.NewDecoder(r.Body).Decode(&dto); err != nil {
		return ReservationDto{}, fmt.Errorf("%w: invalid JSON body: %w", ErrMalformedRequest, err)
	}

	return dto, nil
}

func searchFilterFrom(r *http.Request) (core.SearchFilter, error) {
	query := r.URL.Query()
	filter := core.SearchFilter{}

	var err error

	if filter.RoomID, err = optionalInt64(query.Get("roomId"), "roomId"); err != nil {
		return core.SearchFilter{}, err
	}

	if filter.UserID, err = optionalInt64(query.Get("userId"), "userId"); err != nil {
		return core.SearchFilter{}, err
	}

	if filter.PageSize, err = optionalInt(query.Get("pageSize"), "pageSize"); err != nil {
		return core.SearchFilter{}, err
	}

	if filter.PageNumber, err = optionalInt(query.Get("pageNumber"), "pageNumber"); err != nil {
		return core.SearchFilter{}, err
	}

	return filter, nil
}

func optionalInt64(raw string, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", ErrMalformedRequest, name, raw)
	}

	return &parsed, nil
}

func optionalInt(raw string, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", ErrMalformedRequest, name, raw)
	}

	return &parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(body)
}

func (h handler) logWarn(r *http.Request, err error, status int) {
	if h.logger != nil {
		h.logger.WarnContext(r.Context(), logMsgRequestFailed, h.logArgs(r, err, status)...)
	}
}

func (h handler) logError(r *http.Request, err error, status int) {
	if h.logger != nil {
		h.logger.ErrorContext(r.Context(), logMsgRequestFailed, h.logArgs(r, err, status)...)
	}
}

func (h handler) logArgs(r *http.Request, err error, status int) []any {
	return []any{
		logAttrMethod, r.Method,
		logAttrPath, r.URL.Path,
		logAttrStatus, status,
		logAttrError, err.Error(),
	}
}
