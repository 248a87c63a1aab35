package core

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReservationID identifies a reservation. uuid.Nil means the reservation was not persisted yet.
type ReservationID = uuid.UUID

// ReservationIDString represents a reservation identifier inside event payloads
type ReservationIDString = string

// RoomIDString represents a room identifier inside event payloads
type RoomIDString = string

// UserIDString represents a user identifier inside event payloads
type UserIDString = string

// EventTypeString represents the type of an event
type EventTypeString = string

// OccurredAt represents when an event occurred
type OccurredAt = time.Time

// VersionUint is the highest sequence number among the events of one reservation.
type VersionUint = uint

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDate strips the time of day, reservations are booked in whole calendar days.
func ToDate(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// RoomIDToString converts a room id to its payload representation
func RoomIDToString(roomID int64) RoomIDString {
	return strconv.FormatInt(roomID, 10)
}

// UserIDToString converts a user id to its payload representation
func UserIDToString(userID int64) UserIDString {
	return strconv.FormatInt(userID, 10)
}
