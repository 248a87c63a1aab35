package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell"
)

// EventStore is implemented by postgresengine.EventStore and memengine.EventStore.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// filterForReservations selects the complete history of the given reservations.
func filterForReservations(reservationID core.ReservationIDString, reservationIDs ...core.ReservationIDString) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, len(reservationIDs))
	for _, id := range reservationIDs {
		predicates = append(predicates, eventstore.P("ReservationID", id))
	}

	eventTypes := core.ReservationEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID), predicates...).
		Finalize()
}

// filterForAllReservations selects the history of every reservation.
func filterForAllReservations() eventstore.Filter {
	eventTypes := core.ReservationEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}

// filterForBookings selects the events that ever put a reservation into the room and/or on the user.
// At least one of roomID and userID must be set.
func filterForBookings(roomID *int64, userID *int64) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, 2)

	if roomID != nil {
		predicates = append(predicates, eventstore.P("RoomID", core.RoomIDToString(*roomID)))
	}

	if userID != nil {
		predicates = append(predicates, eventstore.P("UserID", core.UserIDToString(*userID)))
	}

	eventTypes := core.BookingEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAllPredicatesOf(predicates[0], predicates[1:]...).
		Finalize()
}

type projection struct {
	events        core.DomainEvents
	firstSequence eventstore.MaxSequenceNumberUint
	lastSequence  eventstore.MaxSequenceNumberUint
}

// projectAll folds the interleaved histories of several reservations.
// The result is ordered by the sequence number of each reservation's first event, which is its creation order.
func projectAll(storableEvents eventstore.StorableEvents) ([]core.Reservation, error) {
	projections := make(map[core.ReservationIDString]*projection)
	order := make([]core.ReservationIDString, 0)

	for _, storableEvent := range storableEvents {
		domainEvent, err := shell.DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		id := domainEvent.ForReservation()
		p, known := projections[id]
		if !known {
			p = &projection{firstSequence: storableEvent.SequenceNumber}
			projections[id] = p
			order = append(order, id)
		}

		p.events = append(p.events, domainEvent)
		p.lastSequence = storableEvent.SequenceNumber
	}

	slices.SortStableFunc(order, func(a, b core.ReservationIDString) int {
		return cmp.Compare(projections[a].firstSequence, projections[b].firstSequence)
	})

	reservations := make([]core.Reservation, 0, len(order))
	for _, id := range order {
		reservation, _, err := core.ProjectReservation(projections[id].events)
		if err != nil {
			return nil, err
		}

		reservation.Version = projections[id].lastSequence
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

// reservationsBookedFor returns the current state of every reservation that matches
// roomID and userID now, in creation order. Nil criteria do not restrict.
// Without criteria it reads and projects the complete event history, paging happens in memory.
func reservationsBookedFor(ctx context.Context, eventStore EventStore, roomID *int64, userID *int64) ([]core.Reservation, error) {
	if roomID == nil && userID == nil {
		storableEvents, _, err := eventStore.Query(ctx, filterForAllReservations())
		if err != nil {
			return nil, err
		}

		return projectAll(storableEvents)
	}

	// A reservation can be rescheduled to another room or user, so the booking events only
	// yield candidates. Their complete histories decide whether they match now.
	bookingEvents, _, err := eventStore.Query(ctx, filterForBookings(roomID, userID))
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]core.ReservationIDString, 0, len(bookingEvents))
	for _, bookingEvent := range bookingEvents {
		domainEvent, mappingErr := shell.DomainEventFrom(bookingEvent)
		if mappingErr != nil {
			return nil, mappingErr
		}

		candidateIDs = append(candidateIDs, domainEvent.ForReservation())
	}

	if len(candidateIDs) == 0 {
		return make([]core.Reservation, 0), nil
	}

	storableEvents, _, err := eventStore.Query(ctx, filterForReservations(candidateIDs[0], candidateIDs[1:]...))
	if err != nil {
		return nil, err
	}

	candidates, err := projectAll(storableEvents)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(candidates, func(r core.Reservation) bool {
		return (roomID != nil && r.RoomID != *roomID) || (userID != nil && r.UserID != *userID)
	}), nil
}
