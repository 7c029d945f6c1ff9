package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order in the system. It is the aggregate root
// that manages the order lifecycle from creation through payment and shipment
// to delivery or cancellation.
//
// Order follows these invariants:
//   - Customer label must not be empty
//   - Total must be non-negative
//   - Status is always a member of the closed Status enumeration
//   - Status changes only through TransitionTo, validated against the state machine
//   - createdAt is set once at construction and never changes afterwards
//   - updatedAt is touched on every successful mutation
//   - Status history is append-only and ordered by occurrence
//   - Identity is the numeric id; 0 means "not yet persisted" and storage
//     assigns the id exactly once
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the storage-assigned identifier (0 before first persistence)
	id int64

	// customer is a free-text label for the ordering customer
	customer string

	// total is the monetary total of the order (non-negative)
	total float64

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is stamped once at construction
	createdAt time.Time

	// updatedAt is touched on every successful mutation
	updatedAt time.Time

	// history records every status the order has held, in order,
	// starting with the initial one
	history []StatusTransition

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// StatusTransition is an immutable record of a single status change.
// One is appended to the order's history every time the status changes,
// including the initial status at creation.
type StatusTransition struct {
	Status    Status
	Timestamp time.Time
}

// NewOrder creates a new Order with the initial status and freshly stamped
// timestamps. This is the only way to create a valid new order, ensuring all
// business invariants are maintained.
//
// Parameters:
//   - customer: Free-text customer label (must not be empty)
//   - total: Monetary total (must be non-negative)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// The new order has no identifier yet; storage assigns one on first save.
func NewOrder(customer string, total float64) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:        InitialStatus(),
		createdAt:     now,
		updatedAt:     now,
		history:       []StatusTransition{{Status: InitialStatus(), Timestamp: now}},
		isConstructed: true,
	}

	if err := errors.Join(
		order.setCustomer(customer),
		order.setTotal(total),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an Order from persisted state, preserving the
// historical timestamps and status history exactly as stored.
//
// This is the restoration path used by repository implementations; it keeps
// createdAt immutable after construction without any setter existing for it.
//
// Parameters:
//   - id: The previously assigned identifier (must be positive)
//   - customer: Customer label as stored
//   - total: Monetary total as stored
//   - status: The persisted status (must be a valid Status)
//   - createdAt: The original creation timestamp
//   - updatedAt: The last-modification timestamp
//   - history: The persisted status history (copied; may be nil)
//
// Returns:
//   - *Order: The reconstructed order
//   - error: Validation error if any field is invalid
func RestoreOrder(
	id int64,
	customer string,
	total float64,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	history []StatusTransition,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order := &Order{
		id:            id,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		history:       append([]StatusTransition(nil), history...),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setCustomer(customer),
		order.setTotal(total),
	); err != nil {
		return nil, err
	}
	// Restoring a total/customer touches updatedAt via the setters; put the
	// persisted value back so reloads are bit-identical.
	order.updatedAt = updatedAt

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a factory
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID, regardless of
// any other field values.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the order's storage-assigned identifier, or 0 if the order
// has not been persisted yet.
func (o *Order) ID() int64 {
	return o.id
}

// Customer returns the customer label.
func (o *Order) Customer() string {
	return o.customer
}

// Total returns the monetary total of the order.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp. Set once, immutable.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last successful mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// History returns a copy of the order's status history, ordered by
// occurrence. The first entry is always the initial status.
func (o *Order) History() []StatusTransition {
	return append([]StatusTransition(nil), o.history...)
}

// IsTerminal reports whether the order is in a terminal status and can
// never transition again.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// AssignID sets the storage-assigned identifier exactly once.
//
// Repository implementations call this when persisting an order for the
// first time. Assigning an id to an order that already has one, or
// assigning a non-positive id, is rejected.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("order already has id %d, cannot reassign to %d", o.id, id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	return nil
}

// TransitionTo attempts to move the order to the target status.
//
// The transition is validated against the state machine's adjacency table.
// On success the status and updatedAt are mutated, a StatusTransition is
// appended to the history, and true is returned. On failure the order is
// left completely unchanged and false is returned.
//
// This method reports failure rather than raising; the caller decides
// whether a rejected transition is an error. The transition core wraps a
// false result in an InvalidTransitionError.
func (o *Order) TransitionTo(target Status) bool {
	if !o.status.CanTransitionTo(target) {
		return false
	}

	now := time.Now().UTC()
	o.status = target
	o.updatedAt = now
	o.history = append(o.history, StatusTransition{Status: target, Timestamp: now})
	return true
}

// ChangeCustomer updates the customer label and touches updatedAt.
func (o *Order) ChangeCustomer(customer string) error {
	if err := o.setCustomer(customer); err != nil {
		return err
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

// ChangeTotal updates the monetary total and touches updatedAt.
func (o *Order) ChangeTotal(total float64) error {
	if err := o.setTotal(total); err != nil {
		return err
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

// setCustomer validates and sets the customer label.
func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

// setTotal validates and sets the monetary total.
// Total must be non-negative.
func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%f is negative", total))
	}
	o.total = total
	return nil
}
