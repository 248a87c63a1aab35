package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell"
)

const (
	logMsgCreated        = "successfully created reservation"
	logMsgUpdated        = "successfully updated reservation"
	logMsgCancelled      = "successfully cancelled reservation"
	logMsgApproved       = "successfully approved reservation"
	logMsgRetried        = "reservation operation was retried after concurrency conflicts"
	logAttrID            = "id"
	logAttrRoomID        = "room_id"
	logAttrOperation     = "operation"
	logAttrAttempts      = "attempts"
	logAttrTotalDelayMS  = "total_delay_ms"
	logAttrLastErrorType = "last_error_type"
)

// ReservationStore persists reservations. Version is the optimistic concurrency token:
// writes fail with eventstore.ErrConcurrencyConflict if the reservation changed since it was read.
type ReservationStore interface {
	FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, bool, error)
	Save(ctx context.Context, reservation core.Reservation) (core.Reservation, error)
	SetStatus(ctx context.Context, id core.ReservationID, expectedVersion core.VersionUint, status core.Status) error
	SearchByFilter(ctx context.Context, roomID *int64, userID *int64, page core.PageRequest) ([]core.Reservation, error)
}

// AvailabilityChecker reports whether a room is free for [startDate, endDate).
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID int64, startDate, endDate time.Time) (bool, error)
}

// Service implements the reservation lifecycle.
type Service struct {
	store        ReservationStore
	availability AvailabilityChecker
	logger       eventstore.ContextualLogger
	retryOptions []shell.RetryOption
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for lifecycle events. *slog.Logger satisfies it.
func WithLogger(logger eventstore.ContextualLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRetryOptions sets a custom retry configuration for concurrency conflicts.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(s *Service) {
		s.retryOptions = opts
	}
}

// NewService creates a Service with optional configuration.
func NewService(store ReservationStore, availability AvailabilityChecker, opts ...Option) Service {
	s := Service{
		store:        store,
		availability: availability,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// GetReservationByID returns the reservation or core.ErrNotFound.
func (s Service) GetReservationByID(ctx context.Context, id core.ReservationID) (core.Reservation, error) {
	return s.find(eventstore.WithEventualConsistency(ctx), id)
}

// SearchAllByFilter returns one page of the reservations matching the filter, possibly empty.
func (s Service) SearchAllByFilter(ctx context.Context, filter core.SearchFilter) ([]core.Reservation, error) {
	page, err := filter.PageRequest()
	if err != nil {
		return nil, err
	}

	return s.store.SearchByFilter(eventstore.WithEventualConsistency(ctx), filter.RoomID, filter.UserID, page)
}

// CreateReservation stores a new PENDING reservation.
// A status set by the caller is rejected with core.ErrInvalidState before the dates are looked at.
func (s Service) CreateReservation(ctx context.Context, input core.Reservation) (core.Reservation, error) {
	status, err := input.Status.Apply(core.OperationCreate)
	if err != nil {
		return core.Reservation{}, err
	}

	toCreate := core.Reservation{
		RoomID:    input.RoomID,
		UserID:    input.UserID,
		StartDate: core.ToDate(input.StartDate),
		EndDate:   core.ToDate(input.EndDate),
		Status:    status,
	}

	if err = toCreate.ValidateDates(); err != nil {
		return core.Reservation{}, err
	}

	created, err := s.store.Save(eventstore.WithStrongConsistency(ctx), toCreate)
	if err != nil {
		return core.Reservation{}, err
	}

	s.logInfo(ctx, logMsgCreated, logAttrID, created.ID.String(), logAttrRoomID, created.RoomID)

	return created, nil
}

// UpdateReservation replaces room, user and dates of a PENDING reservation.
// The status of the input is ignored, the result is always PENDING.
func (s Service) UpdateReservation(ctx context.Context, id core.ReservationID, input core.Reservation) (core.Reservation, error) {
	var updated core.Reservation

	err := s.retry(ctx, core.OperationUpdate, id, func(ctx context.Context) error {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}

		status, err := current.Status.Apply(core.OperationUpdate)
		if err != nil {
			return err
		}

		toSave := core.Reservation{
			ID:        current.ID,
			RoomID:    input.RoomID,
			UserID:    input.UserID,
			StartDate: core.ToDate(input.StartDate),
			EndDate:   core.ToDate(input.EndDate),
			Status:    status,
			Version:   current.Version,
		}

		if err = toSave.ValidateDates(); err != nil {
			return err
		}

		updated, err = s.store.Save(ctx, toSave)

		return err
	})

	if err != nil {
		return core.Reservation{}, err
	}

	s.logInfo(ctx, logMsgUpdated, logAttrID, id.String())

	return updated, nil
}

// CancelReservation moves a PENDING reservation to CANCELLED.
func (s Service) CancelReservation(ctx context.Context, id core.ReservationID) error {
	err := s.retry(ctx, core.OperationCancel, id, func(ctx context.Context) error {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}

		status, err := current.Status.Apply(core.OperationCancel)
		if err != nil {
			return err
		}

		return s.store.SetStatus(ctx, id, current.Version, status)
	})

	if err != nil {
		return err
	}

	s.logInfo(ctx, logMsgCancelled, logAttrID, id.String())

	return nil
}

// ApproveReservation moves a PENDING reservation to APPROVED if its room is available.
// An unavailable room fails with core.ErrConflict and leaves the reservation PENDING.
func (s Service) ApproveReservation(ctx context.Context, id core.ReservationID) (core.Reservation, error) {
	err := s.retry(ctx, core.OperationApprove, id, func(ctx context.Context) error {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}

		status, err := current.Status.Apply(core.OperationApprove)
		if err != nil {
			return err
		}

		available, err := s.availability.IsAvailable(ctx, current.RoomID, current.StartDate, current.EndDate)
		if err != nil {
			return err
		}

		if !available {
			return fmt.Errorf("%w: date conflict", core.ErrConflict)
		}

		return s.store.SetStatus(ctx, id, current.Version, status)
	})

	if err != nil {
		return core.Reservation{}, err
	}

	approved, err := s.find(eventstore.WithStrongConsistency(ctx), id)
	if err != nil {
		return core.Reservation{}, err
	}

	s.logInfo(ctx, logMsgApproved, logAttrID, id.String(), logAttrRoomID, approved.RoomID)

	return approved, nil
}

func (s Service) find(ctx context.Context, id core.ReservationID) (core.Reservation, error) {
	reservation, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return core.Reservation{}, err
	}

	if !found {
		return core.Reservation{}, fmt.Errorf("%w: not found by id = %s", core.ErrNotFound, id)
	}

	return reservation, nil
}

// retry runs fn with strong consistency and retries it on concurrency conflicts.
func (s Service) retry(ctx context.Context, operation core.Operation, id core.ReservationID, fn shell.RetryableFunc) error {
	metrics, err := shell.RetryWithExponentialBackoff(
		eventstore.WithStrongConsistency(ctx),
		fn,
		s.retryOptions...,
	)

	if metrics.Attempts > 1 && s.logger != nil {
		s.logger.DebugContext(
			ctx,
			logMsgRetried,
			logAttrOperation, string(operation),
			logAttrID, id.String(),
			logAttrAttempts, metrics.Attempts,
			logAttrTotalDelayMS, metrics.TotalDelay.Milliseconds(),
			logAttrLastErrorType, metrics.LastErrorType,
		)
	}

	return err
}

func (s Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}
