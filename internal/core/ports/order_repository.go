// Package ports defines the contracts between the application core and its
// adapters. Implementations live under internal/adapters.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Three interchangeable implementations exist: a volatile in-memory map,
// a JSON-file-backed store, and a PostgreSQL store.
//
// Implementations must be safe for concurrent use without any external
// locking by callers. Note that repository-level safety alone does not
// make a read-validate-write sequence atomic; the transition use case
// provides that via per-order locking on top of this contract.
type OrderRepository interface {
	// Save upserts an order by its identifier. An order with id 0 is
	// assigned the next sequential identifier first; identifiers are
	// never reused or reassigned. Returns the stored order.
	Save(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get retrieves an order by its identifier.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Delete removes an order by its identifier. Deleting an absent id
	// is a no-op; "not found" semantics belong to the service layer.
	Delete(ctx context.Context, id int64) error

	// GetAll returns a point-in-time snapshot of every stored order.
	// The returned slice is a copy; callers may iterate it freely while
	// others mutate the repository.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus returns a snapshot of every order currently in the
	// given status. Used by the advancement scan and status queries.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
