// Package order provides domain entities and business logic for order
// lifecycle management. It implements the Order aggregate root with
// state-machine validated status transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - StatusTransition: An immutable audit record of a single status change
//   - InvalidTransitionError: The value-carrying error for rejected transitions
//
// Key business rules:
//   - Orders must have a non-empty customer label and a non-negative total
//   - Order status follows a defined workflow: Created -> Paid -> Shipped -> Delivered
//   - Orders can be cancelled while in the Created or Paid status
//   - Delivered and Cancelled are terminal; no transition ever leaves them
//   - Status history is append-only and ordered by occurrence
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
