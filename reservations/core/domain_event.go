package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in a reservation's life.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// ForReservation returns the id of the reservation the event belongs to.
	ForReservation() ReservationIDString
}

// ReservationEventTypes returns the types of all events that make up a reservation's history.
func ReservationEventTypes() []EventTypeString {
	return []EventTypeString{
		ReservationRequestedEventType,
		ReservationRescheduledEventType,
		ReservationApprovedEventType,
		ReservationCancelledEventType,
	}
}

// BookingEventTypes returns the types of the events that set room, user and dates.
func BookingEventTypes() []EventTypeString {
	return []EventTypeString{
		ReservationRequestedEventType,
		ReservationRescheduledEventType,
	}
}
