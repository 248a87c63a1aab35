// Package store persists reservations as events in an event store.
//
// Every reservation is its own "dynamic event stream", selected by the ReservationID
// predicate. Its Version is the max sequence number of that stream, and every write
// is a conditional append against it.
//
// AvailabilityChecker answers whether a room is free by projecting the reservations
// that were booked for the room.
package store
