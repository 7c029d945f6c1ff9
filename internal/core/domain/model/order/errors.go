package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for rejected status transitions.
// Use errors.Is against it to branch on the failure kind; inspect
// InvalidTransitionError for the statuses involved.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError is returned when a requested status change is not
// present in the state machine's adjacency table from the order's current
// status. It carries the order id and both statuses so callers can render
// a precise message or branch on the specific pair.
type InvalidTransitionError struct {
	OrderID int64
	From    Status
	To      Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// order and status pair.
func NewInvalidTransitionError(orderID int64, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, From: from, To: to}
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%v: order %d cannot move from %s to %s",
		ErrInvalidTransition, e.OrderID, e.From, e.To)
}

// Unwrap returns the sentinel ErrInvalidTransition for errors.Is matching.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
