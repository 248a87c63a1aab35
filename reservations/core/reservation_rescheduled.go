package core

import (
	"time"
)

// ReservationRescheduledEventType is the event type identifier.
const ReservationRescheduledEventType = "ReservationRescheduled"

// ReservationRescheduled is recorded when a PENDING reservation is updated.
// It carries the complete new booking, room and user included.
type ReservationRescheduled struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	RoomID        RoomIDString
	UserID        UserIDString
	StartDate     time.Time
	EndDate       time.Time
	OccurredAt    OccurredAt
}

// BuildReservationRescheduled creates a new ReservationRescheduled event.
func BuildReservationRescheduled(
	reservationID ReservationID,
	roomID int64,
	userID int64,
	startDate time.Time,
	endDate time.Time,
	occurredAt time.Time,
) ReservationRescheduled {

	return ReservationRescheduled{
		EventType:     ReservationRescheduledEventType,
		ReservationID: reservationID.String(),
		RoomID:        RoomIDToString(roomID),
		UserID:        UserIDToString(userID),
		StartDate:     ToDate(startDate),
		EndDate:       ToDate(endDate),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationRescheduled) IsEventType() string {
	return ReservationRescheduledEventType
}

func (e ReservationRescheduled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationRescheduled) ForReservation() ReservationIDString {
	return e.ReservationID
}
