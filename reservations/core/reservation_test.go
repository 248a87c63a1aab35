package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Test_Reservation_ValidateDates(t *testing.T) {
	testCases := []struct {
		description string
		start       time.Time
		end         time.Time
		valid       bool
	}{
		{description: "end after start", start: date(2024, 6, 1), end: date(2024, 6, 3), valid: true},
		{description: "one day", start: date(2024, 6, 1), end: date(2024, 6, 2), valid: true},
		{description: "end equals start", start: date(2024, 6, 1), end: date(2024, 6, 1), valid: false},
		{description: "end before start", start: date(2024, 6, 3), end: date(2024, 6, 1), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := core.Reservation{StartDate: tc.start, EndDate: tc.end}.ValidateDates()

			if tc.valid {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, core.ErrInvalidArgument)
			assert.ErrorContains(t, err, "startDate must be 1 day earlier than endDate")
		})
	}
}

func Test_Reservation_Overlaps(t *testing.T) {
	reservation := core.Reservation{StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 15)}

	assert.True(t, reservation.Overlaps(date(2024, 6, 12), date(2024, 6, 13)), "inside")
	assert.True(t, reservation.Overlaps(date(2024, 6, 5), date(2024, 6, 11)), "overlapping start")
	assert.True(t, reservation.Overlaps(date(2024, 6, 14), date(2024, 6, 20)), "overlapping end")
	assert.True(t, reservation.Overlaps(date(2024, 6, 1), date(2024, 6, 30)), "enclosing")
	assert.False(t, reservation.Overlaps(date(2024, 6, 15), date(2024, 6, 17)), "adjacent after")
	assert.False(t, reservation.Overlaps(date(2024, 6, 8), date(2024, 6, 10)), "adjacent before")
}

func Test_ProjectReservation(t *testing.T) {
	// arrange
	id := uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildReservationRequested(id, 1, 5, date(2024, 6, 1), date(2024, 6, 3), now),
		core.BuildReservationRescheduled(id, 2, 5, date(2024, 6, 2), date(2024, 6, 4), now),
		core.BuildReservationApproved(id, 2, now),
	}

	// act
	reservation, found, err := core.ProjectReservation(events)

	// assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, reservation.ID)
	assert.Equal(t, int64(2), reservation.RoomID)
	assert.Equal(t, int64(5), reservation.UserID)
	assert.Equal(t, date(2024, 6, 2), reservation.StartDate)
	assert.Equal(t, date(2024, 6, 4), reservation.EndDate)
	assert.Equal(t, core.StatusApproved, reservation.Status)
}

func Test_ProjectReservation_Cancelled(t *testing.T) {
	id := uuid.New()
	events := core.DomainEvents{
		core.BuildReservationRequested(id, 1, 5, date(2024, 6, 1), date(2024, 6, 3), time.Now()),
		core.BuildReservationCancelled(id, time.Now()),
	}

	reservation, found, err := core.ProjectReservation(events)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, core.StatusCancelled, reservation.Status)
}

func Test_ProjectReservation_NoEvents(t *testing.T) {
	_, found, err := core.ProjectReservation(core.DomainEvents{})

	assert.NoError(t, err)
	assert.False(t, found)
}

func Test_ProjectReservation_MalformedEvent(t *testing.T) {
	event := core.BuildReservationRequested(uuid.New(), 1, 5, date(2024, 6, 1), date(2024, 6, 3), time.Now())
	event.RoomID = "room-one"

	_, _, err := core.ProjectReservation(core.DomainEvents{event})

	assert.ErrorIs(t, err, core.ErrMalformedEvent)
}

func Test_ToDate(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)

	assert.Equal(t, date(2024, 6, 1), core.ToDate(time.Date(2024, 6, 1, 23, 30, 0, 0, berlin)))
	assert.Equal(t, date(2024, 6, 1), core.ToDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}
