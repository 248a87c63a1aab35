package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
	"github.com/AntonStoeckl/room-reservations-go/reservations/store"
)

func Test_IsAvailable(t *testing.T) {
	// arrange
	s, eventStore := givenStore(t)
	checker := store.NewAvailabilityChecker(eventStore)

	approved := givenSavedReservation(t, s, 1, 5, date(2024, 6, 10), date(2024, 6, 15))
	require.NoError(t, s.SetStatus(context.Background(), approved.ID, approved.Version, core.StatusApproved))

	cancelled := givenSavedReservation(t, s, 1, 6, date(2024, 6, 20), date(2024, 6, 25))
	require.NoError(t, s.SetStatus(context.Background(), cancelled.ID, cancelled.Version, core.StatusCancelled))

	givenSavedReservation(t, s, 1, 7, date(2024, 7, 1), date(2024, 7, 5)) // pending

	approvedElsewhere := givenSavedReservation(t, s, 2, 5, date(2024, 8, 1), date(2024, 8, 5))
	require.NoError(t, s.SetStatus(context.Background(), approvedElsewhere.ID, approvedElsewhere.Version, core.StatusApproved))

	testCases := []struct {
		description string
		roomID      int64
		start, end  int
		month       int
		available   bool
	}{
		{description: "overlaps approved", roomID: 1, month: 6, start: 12, end: 17, available: false},
		{description: "inside approved", roomID: 1, month: 6, start: 11, end: 12, available: false},
		{description: "ends when approved starts", roomID: 1, month: 6, start: 8, end: 10, available: true},
		{description: "starts when approved ends", roomID: 1, month: 6, start: 15, end: 18, available: true},
		{description: "overlaps cancelled", roomID: 1, month: 6, start: 21, end: 23, available: true},
		{description: "overlaps pending", roomID: 1, month: 7, start: 2, end: 3, available: true},
		{description: "other room approved", roomID: 1, month: 8, start: 2, end: 3, available: true},
		{description: "other room itself", roomID: 2, month: 8, start: 2, end: 3, available: false},
		{description: "unknown room", roomID: 99, month: 6, start: 12, end: 13, available: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			available, err := checker.IsAvailable(
				context.Background(),
				tc.roomID,
				date(2024, time.Month(tc.month), tc.start),
				date(2024, time.Month(tc.month), tc.end),
			)

			assert.NoError(t, err)
			assert.Equal(t, tc.available, available)
		})
	}
}

func Test_IsAvailable_UsesTheCurrentRoomOfRescheduledReservations(t *testing.T) {
	// arrange
	s, eventStore := givenStore(t)
	checker := store.NewAvailabilityChecker(eventStore)

	moved := givenSavedReservation(t, s, 1, 5, date(2024, 6, 10), date(2024, 6, 15))
	moved.RoomID = 2
	moved, err := s.Save(context.Background(), moved)
	require.NoError(t, err)
	require.NoError(t, s.SetStatus(context.Background(), moved.ID, moved.Version, core.StatusApproved))

	// act
	room1Available, err1 := checker.IsAvailable(context.Background(), 1, date(2024, 6, 10), date(2024, 6, 15))
	room2Available, err2 := checker.IsAvailable(context.Background(), 2, date(2024, 6, 10), date(2024, 6, 15))

	// assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.True(t, room1Available)
	assert.False(t, room2Available)
}
