package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell"
)

// ReservationStore is an event-sourced store of reservations.
type ReservationStore struct {
	eventStore EventStore
	now        func() time.Time
}

// Option defines a functional option for configuring ReservationStore.
type Option func(*ReservationStore)

// WithClock replaces time.Now for the OccurredAt of new events.
func WithClock(now func() time.Time) Option {
	return func(s *ReservationStore) {
		s.now = now
	}
}

// NewReservationStore creates a ReservationStore on top of the given event store.
func NewReservationStore(eventStore EventStore, options ...Option) ReservationStore {
	s := ReservationStore{
		eventStore: eventStore,
		now:        time.Now,
	}

	for _, option := range options {
		option(&s)
	}

	return s
}

// FindByID projects the reservation from its events. The bool is false if it has none.
func (s ReservationStore) FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, bool, error) {
	storableEvents, maxSequenceNumber, err := s.eventStore.Query(ctx, filterForReservations(id.String()))
	if err != nil {
		return core.Reservation{}, false, err
	}

	domainEvents, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return core.Reservation{}, false, err
	}

	reservation, found, err := core.ProjectReservation(domainEvents)
	if err != nil || !found {
		return core.Reservation{}, false, err
	}

	reservation.Version = maxSequenceNumber

	return reservation, true, nil
}

// Save records the booking data of a PENDING reservation.
//
// A reservation without ID gets a new UUIDv7 and a ReservationRequested event.
// A persisted one gets a ReservationRescheduled event, appended only if nothing happened
// to the reservation since Version; otherwise eventstore.ErrConcurrencyConflict is returned.
//
// Status changes are recorded with SetStatus.
func (s ReservationStore) Save(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	if reservation.Status != core.StatusPending {
		return core.Reservation{}, fmt.Errorf(
			"%w: only pending reservations can be saved, got %s",
			core.ErrInvalidArgument,
			reservation.Status,
		)
	}

	var event core.DomainEvent
	expectedVersion := reservation.Version

	if reservation.IsPersisted() {
		event = core.BuildReservationRescheduled(
			reservation.ID, reservation.RoomID, reservation.UserID, reservation.StartDate, reservation.EndDate, s.now(),
		)
	} else {
		id, err := uuid.NewV7()
		if err != nil {
			return core.Reservation{}, err
		}

		reservation.ID = id
		expectedVersion = 0
		event = core.BuildReservationRequested(
			reservation.ID, reservation.RoomID, reservation.UserID, reservation.StartDate, reservation.EndDate, s.now(),
		)
	}

	if err := s.append(ctx, reservation.ID, expectedVersion, event); err != nil {
		return core.Reservation{}, err
	}

	saved, found, err := s.FindByID(eventstore.WithStrongConsistency(ctx), reservation.ID)
	if err != nil {
		return core.Reservation{}, err
	}

	if !found {
		return core.Reservation{}, fmt.Errorf("%w: not found by id = %s", core.ErrNotFound, reservation.ID)
	}

	return saved, nil
}

// SetStatus records an approval or cancellation. It fails with eventstore.ErrConcurrencyConflict
// if anything happened to the reservation since expectedVersion.
func (s ReservationStore) SetStatus(
	ctx context.Context,
	id core.ReservationID,
	expectedVersion core.VersionUint,
	status core.Status,
) error {

	var event core.DomainEvent

	switch status {
	case core.StatusApproved:
		reservation, found, err := s.FindByID(eventstore.WithStrongConsistency(ctx), id)
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("%w: not found by id = %s", core.ErrNotFound, id)
		}

		event = core.BuildReservationApproved(id, reservation.RoomID, s.now())

	case core.StatusCancelled:
		event = core.BuildReservationCancelled(id, s.now())

	default:
		return fmt.Errorf("%w: status %q can not be set", core.ErrInvalidArgument, status)
	}

	return s.append(ctx, id, expectedVersion, event)
}

// SearchByFilter returns one page of the reservations currently matching roomID and userID,
// ordered by creation. Nil criteria do not restrict.
func (s ReservationStore) SearchByFilter(
	ctx context.Context,
	roomID *int64,
	userID *int64,
	page core.PageRequest,
) ([]core.Reservation, error) {

	reservations, err := reservationsBookedFor(ctx, s.eventStore, roomID, userID)
	if err != nil {
		return nil, err
	}

	return core.Slice(reservations, page), nil
}

func (s ReservationStore) append(
	ctx context.Context,
	id core.ReservationID,
	expectedVersion core.VersionUint,
	event core.DomainEvent,
) error {

	storableEvent, err := shell.StorableEventFrom(event, shell.EventMetadataFor(ctx))
	if err != nil {
		return err
	}

	return s.eventStore.Append(ctx, filterForReservations(id.String()), expectedVersion, storableEvent)
}
