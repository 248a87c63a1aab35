package core

import (
	"time"
)

// ReservationApprovedEventType is the event type identifier.
const ReservationApprovedEventType = "ReservationApproved"

// ReservationApproved is recorded when a PENDING reservation passed the availability check.
type ReservationApproved struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	RoomID        RoomIDString
	OccurredAt    OccurredAt
}

// BuildReservationApproved creates a new ReservationApproved event.
func BuildReservationApproved(reservationID ReservationID, roomID int64, occurredAt time.Time) ReservationApproved {
	return ReservationApproved{
		EventType:     ReservationApprovedEventType,
		ReservationID: reservationID.String(),
		RoomID:        RoomIDToString(roomID),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationApproved) IsEventType() string {
	return ReservationApprovedEventType
}

func (e ReservationApproved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationApproved) ForReservation() ReservationIDString {
	return e.ReservationID
}
