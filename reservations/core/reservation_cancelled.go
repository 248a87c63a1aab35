package core

import (
	"time"
)

// ReservationCancelledEventType is the event type identifier.
const ReservationCancelledEventType = "ReservationCancelled"

// ReservationCancelled is recorded when a PENDING reservation is cancelled.
type ReservationCancelled struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	OccurredAt    OccurredAt
}

// BuildReservationCancelled creates a new ReservationCancelled event.
func BuildReservationCancelled(reservationID ReservationID, occurredAt time.Time) ReservationCancelled {
	return ReservationCancelled{
		EventType:     ReservationCancelledEventType,
		ReservationID: reservationID.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationCancelled) IsEventType() string {
	return ReservationCancelledEventType
}

func (e ReservationCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationCancelled) ForReservation() ReservationIDString {
	return e.ReservationID
}
