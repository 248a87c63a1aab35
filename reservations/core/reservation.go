package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Reservation is a booking of a room by a user for the calendar days [StartDate, EndDate).
type Reservation struct {
	ID        ReservationID
	RoomID    int64
	UserID    int64
	StartDate time.Time
	EndDate   time.Time
	Status    Status

	// Version is the optimistic concurrency token, 0 for reservations that were never persisted.
	Version VersionUint
}

// IsPersisted reports whether the store has assigned an ID.
func (r Reservation) IsPersisted() bool {
	return r.ID != uuid.Nil
}

// ValidateDates checks that EndDate is strictly after StartDate.
func (r Reservation) ValidateDates() error {
	if !r.EndDate.After(r.StartDate) {
		return fmt.Errorf("%w: startDate must be 1 day earlier than endDate", ErrInvalidArgument)
	}

	return nil
}

// Overlaps reports whether the reservation shares at least one day with [startDate, endDate).
// Adjacent ranges, where one ends on the day the other starts, do not overlap.
func (r Reservation) Overlaps(startDate, endDate time.Time) bool {
	return r.StartDate.Before(endDate) && startDate.Before(r.EndDate)
}

// Apply folds one event of the reservation's history into its state.
func (r Reservation) Apply(event DomainEvent) (Reservation, error) {
	switch e := event.(type) {
	case ReservationRequested:
		return r.applyBooking(e.ReservationID, e.RoomID, e.UserID, e.StartDate, e.EndDate)

	case ReservationRescheduled:
		return r.applyBooking(e.ReservationID, e.RoomID, e.UserID, e.StartDate, e.EndDate)

	case ReservationApproved:
		r.Status = StatusApproved
		return r, nil

	case ReservationCancelled:
		r.Status = StatusCancelled
		return r, nil

	default:
		return r, fmt.Errorf("%w: unexpected event type %s", ErrMalformedEvent, event.IsEventType())
	}
}

func (r Reservation) applyBooking(
	reservationID ReservationIDString,
	roomID RoomIDString,
	userID UserIDString,
	startDate time.Time,
	endDate time.Time,
) (Reservation, error) {

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return r, fmt.Errorf("%w: reservation id %q: %w", ErrMalformedEvent, reservationID, err)
	}

	room, err := strconv.ParseInt(roomID, 10, 64)
	if err != nil {
		return r, fmt.Errorf("%w: room id %q: %w", ErrMalformedEvent, roomID, err)
	}

	user, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return r, fmt.Errorf("%w: user id %q: %w", ErrMalformedEvent, userID, err)
	}

	r.ID = id
	r.RoomID = room
	r.UserID = user
	r.StartDate = ToDate(startDate)
	r.EndDate = ToDate(endDate)
	r.Status = StatusPending

	return r, nil
}

// ProjectReservation builds the current state of a reservation from its events in sequence order.
// The returned bool is false if there were no events.
func ProjectReservation(events DomainEvents) (Reservation, bool, error) {
	if len(events) == 0 {
		return Reservation{}, false, nil
	}

	reservation := Reservation{}
	for _, event := range events {
		var err error
		if reservation, err = reservation.Apply(event); err != nil {
			return Reservation{}, false, err
		}
	}

	return reservation, true, nil
}
