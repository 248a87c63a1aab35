// Package service orchestrates the reservation lifecycle: lookup, search, create, update,
// cancel and approve.
//
// Status-changing operations run Query -> Decide -> Append against the reservation's own
// event stream, retried with exponential backoff when another write to the same reservation
// won the race. The loser then sees the winner's state and fails with core.ErrInvalidState.
//
// Two approvals of different reservations for the same room are not serialized against each other.
package service
