package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──> Paid ──> Shipped ──> Delivered
//	   │          │
//	   └──────────┴──> Cancelled
//
// Delivered and Cancelled are terminal states with no outgoing
// transitions. Repeating the current status is never a valid
// transition; the adjacency table has no self-loops.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first created.
	// Orders in this status are awaiting payment.
	Created

	// Paid indicates payment has been processed and the order is
	// ready for shipment.
	Paid

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled by the customer
	// or the system. This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getTransitionTable returns the complete adjacency table of the order
// state machine. Each status maps to the exact set of statuses reachable
// in one step; a status absent from a row's set is not reachable from it.
// Terminal statuses map to an empty set.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Created:   {Paid, Cancelled},
		Paid:      {Shipped, Cancelled},
		Shipped:   {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// InitialStatus returns the status assigned to newly created orders.
func InitialStatus() Status {
	return Created
}

// ParseStatus converts a canonical status name back into a Status value.
// Used when reconstructing orders from persistence, where statuses are
// stored by name.
//
// Returns:
//   - the matching Status and nil for a known name
//   - Unknown and a ValueIsInvalidError for anything else
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Paid, Shipped, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., persistence, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns:
//   - the canonical name for valid statuses
//   - "Unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether the state machine allows moving from
// this status to the target in a single step.
//
// The check is pure and total: any (from, to) pair not present in the
// adjacency table is invalid, including transitions from Unknown,
// transitions to a status equal to the current one, and any transition
// out of a terminal status.
//
// Example:
//
//	order.Created.CanTransitionTo(order.Paid)      // true
//	order.Created.CanTransitionTo(order.Delivered) // false
//	order.Delivered.CanTransitionTo(order.Created) // false (terminal)
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitionTable()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether this status has no outgoing transitions.
//
// Terminal statuses are Delivered and Cancelled. Orders in a terminal
// status can never transition again.
func (s Status) IsTerminal() bool {
	next, ok := getTransitionTable()[s]
	return ok && len(next) == 0
}
