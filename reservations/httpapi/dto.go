package httpapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
)

const dateLayout = time.DateOnly

// ErrMalformedRequest is returned for requests that can not be turned into a reservation.
var ErrMalformedRequest = errors.New("malformed request")

// ReservationDto is the JSON representation of a reservation. Dates are ISO calendar dates.
type ReservationDto struct {
	ID        *string `json:"id,omitempty"`
	RoomID    *int64  `json:"roomId"`
	UserID    *int64  `json:"userId"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Status    *string `json:"status,omitempty"`
}

// ErrorResponseDto is the body of every failed request.
type ErrorResponseDto struct {
	Message       string    `json:"message"`
	DetailMessage string    `json:"detailMessage"`
	ErrorTime     time.Time `json:"errorTime"`
}

func reservationDtoFrom(r core.Reservation) ReservationDto {
	id := r.ID.String()
	roomID, userID := r.RoomID, r.UserID
	startDate, endDate := r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout)
	status := r.Status.String()

	return ReservationDto{
		ID:        &id,
		RoomID:    &roomID,
		UserID:    &userID,
		StartDate: &startDate,
		EndDate:   &endDate,
		Status:    &status,
	}
}

func reservationDtosFrom(reservations []core.Reservation) []ReservationDto {
	dtos := make([]ReservationDto, 0, len(reservations))
	for _, r := range reservations {
		dtos = append(dtos, reservationDtoFrom(r))
	}

	return dtos
}

// toReservation checks the required fields and converts the DTO. The id is not converted,
// it comes from the path or is assigned by the store.
func (dto ReservationDto) toReservation() (core.Reservation, error) {
	if dto.RoomID == nil {
		return core.Reservation{}, fmt.Errorf("%w: roomId is required", ErrMalformedRequest)
	}

	if dto.UserID == nil {
		return core.Reservation{}, fmt.Errorf("%w: userId is required", ErrMalformedRequest)
	}

	startDate, err := parseDate("startDate", dto.StartDate)
	if err != nil {
		return core.Reservation{}, err
	}

	endDate, err := parseDate("endDate", dto.EndDate)
	if err != nil {
		return core.Reservation{}, err
	}

	status := core.StatusUnset
	if dto.Status != nil {
		if status, err = core.ParseStatus(*dto.Status); err != nil {
			return core.Reservation{}, errors.Join(ErrMalformedRequest, err)
		}
	}

	return core.Reservation{
		RoomID:    *dto.RoomID,
		UserID:    *dto.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	}, nil
}

func parseDate(field string, raw *string) (time.Time, error) {
	if raw == nil {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrMalformedRequest, field)
	}

	parsed, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date like 2024-06-01, got %q", ErrMalformedRequest, field, *raw)
	}

	return parsed, nil
}

func parseReservationID(raw string) (core.ReservationID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid reservation id %q", ErrMalformedRequest, raw)
	}

	return id, nil
}
