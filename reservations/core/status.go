package core

import (
	"fmt"
	"strings"
)

// Status is the lifecycle status of a reservation.
type Status string

const (
	StatusUnset     Status = ""
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCancelled Status = "CANCELLED"
)

// Operation is a status-changing operation on a reservation.
type Operation string

const (
	OperationCreate  Operation = "create"
	OperationUpdate  Operation = "update"
	OperationCancel  Operation = "cancel"
	OperationApprove Operation = "approve"
)

// transitions is the complete state machine, a missing entry means the operation is forbidden.
var transitions = map[Status]map[Operation]Status{
	StatusUnset: {
		OperationCreate: StatusPending,
	},
	StatusPending: {
		OperationUpdate:  StatusPending,
		OperationCancel:  StatusCancelled,
		OperationApprove: StatusApproved,
	},
}

// Apply returns the status the operation leads to, or an ErrInvalidState if the
// operation is not allowed in the current status.
func (s Status) Apply(operation Operation) (Status, error) {
	next, ok := transitions[s][operation]
	if ok {
		return next, nil
	}

	switch {
	case operation == OperationCreate:
		return s, fmt.Errorf("%w: status should be empty", ErrInvalidState)

	case operation == OperationCancel:
		return s, fmt.Errorf(
			"%w: you can't cancel it, it's already been approved or cancelled, reservation status %s",
			ErrInvalidState,
			s,
		)

	default:
		return s, fmt.Errorf("%w: incorrect reservation status %s", ErrInvalidState, s)
	}
}

// IsTerminal reports whether no operation can leave this status.
func (s Status) IsTerminal() bool {
	return s != StatusUnset && len(transitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a status case-insensitively. The empty string yields StatusUnset.
func ParseStatus(raw string) (Status, error) {
	switch status := Status(strings.ToUpper(strings.TrimSpace(raw))); status {
	case StatusUnset, StatusPending, StatusApproved, StatusCancelled:
		return status, nil

	default:
		return StatusUnset, fmt.Errorf("%w: unknown reservation status %q", ErrInvalidArgument, raw)
	}
}
