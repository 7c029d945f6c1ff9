package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand represents a request to move an order to a target
// status. Whether the move is legal is decided by the handler against the
// order's current persisted status, not here; the command only guarantees
// the id is plausible and the target is a member of the status enumeration.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Paid)
//	if err != nil {
//	    return err
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // the state machine rejected the move
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	target  order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Validates that the order id is positive and the target is a valid status.
func NewTransitionOrderCommand(orderID int64, target order.Status) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// NewPayOrderCommand creates a command transitioning an order to Paid.
// Pure sugar over NewTransitionOrderCommand; carries no additional logic.
func NewPayOrderCommand(orderID int64) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Paid)
}

// NewShipOrderCommand creates a command transitioning an order to Shipped.
// Pure sugar over NewTransitionOrderCommand; carries no additional logic.
func NewShipOrderCommand(orderID int64) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Shipped)
}

// NewDeliverOrderCommand creates a command transitioning an order to Delivered.
// Pure sugar over NewTransitionOrderCommand; carries no additional logic.
func NewDeliverOrderCommand(orderID int64) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Delivered)
}

// NewCancelOrderCommand creates a command transitioning an order to Cancelled.
// Pure sugar over NewTransitionOrderCommand; carries no additional logic.
func NewCancelOrderCommand(orderID int64) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Cancelled)
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() int64 {
	return c.orderID
}

// Target returns the requested target status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

func (c *TransitionOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
