package store

import (
	"context"
	"time"

	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
)

// AvailabilityChecker decides whether a room is free for a date range.
//
// Only APPROVED reservations occupy a room. PENDING ones are requests competing for it,
// CANCELLED ones are gone. Ranges are half-open, so a reservation may start on the day another one ends.
type AvailabilityChecker struct {
	eventStore EventStore
}

// NewAvailabilityChecker creates an AvailabilityChecker on top of the given event store.
func NewAvailabilityChecker(eventStore EventStore) AvailabilityChecker {
	return AvailabilityChecker{eventStore: eventStore}
}

// IsAvailable reports whether no APPROVED reservation of the room overlaps [startDate, endDate).
func (c AvailabilityChecker) IsAvailable(ctx context.Context, roomID int64, startDate, endDate time.Time) (bool, error) {
	reservations, err := reservationsBookedFor(ctx, c.eventStore, &roomID, nil)
	if err != nil {
		return false, err
	}

	startDate, endDate = core.ToDate(startDate), core.ToDate(endDate)

	for _, reservation := range reservations {
		if reservation.Status == core.StatusApproved && reservation.Overlaps(startDate, endDate) {
			return false, nil
		}
	}

	return true, nil
}
