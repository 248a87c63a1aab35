package core

import (
	"time"
)

// ReservationRequestedEventType is the event type identifier.
const ReservationRequestedEventType = "ReservationRequested"

// ReservationRequested is recorded when a reservation is created. It starts the reservation as PENDING.
type ReservationRequested struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	RoomID        RoomIDString
	UserID        UserIDString
	StartDate     time.Time
	EndDate       time.Time
	OccurredAt    OccurredAt
}

// BuildReservationRequested creates a new ReservationRequested event.
func BuildReservationRequested(
	reservationID ReservationID,
	roomID int64,
	userID int64,
	startDate time.Time,
	endDate time.Time,
	occurredAt time.Time,
) ReservationRequested {

	return ReservationRequested{
		EventType:     ReservationRequestedEventType,
		ReservationID: reservationID.String(),
		RoomID:        RoomIDToString(roomID),
		UserID:        UserIDToString(userID),
		StartDate:     ToDate(startDate),
		EndDate:       ToDate(endDate),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationRequested) IsEventType() string {
	return ReservationRequestedEventType
}

func (e ReservationRequested) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationRequested) ForReservation() ReservationIDString {
	return e.ReservationID
}
