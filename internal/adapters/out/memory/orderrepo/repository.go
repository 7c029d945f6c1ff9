// Package orderrepo provides the volatile in-memory implementation of the
// order repository. State lives in a map guarded by a RWMutex with an
// atomically incremented identifier counter; nothing survives a restart.
package orderrepo

import (
	"context"
	"sync"
	"sync/atomic"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// InMemoryOrderRepository implements ports.OrderRepository with a
// concurrent map keyed by order id.
//
// Orders are stored as snapshots: Save copies the aggregate in and Get
// copies it back out, so callers can never mutate stored state except
// through another Save.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]*order.Order
	nextID atomic.Int64
}

// NewInMemoryOrderRepository creates an empty in-memory repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[int64]*order.Order),
	}
}

// Save upserts an order by id, assigning the next sequential identifier
// to orders that have none yet. Returns the stored order.
func (r *InMemoryOrderRepository) Save(_ context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	if aggregate.ID() == 0 {
		if err := aggregate.AssignID(r.nextID.Add(1)); err != nil {
			return nil, err
		}
	} else {
		// Saving a restored order must keep the counter ahead of every
		// id ever handed out, or a later create would collide with it.
		for {
			current := r.nextID.Load()
			if aggregate.ID() <= current || r.nextID.CompareAndSwap(current, aggregate.ID()) {
				break
			}
		}
	}

	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.orders[snapshot.ID()] = snapshot
	r.mu.Unlock()

	return aggregate, nil
}

// Get retrieves a copy of the order with the given id.
// Returns an errs.ObjectNotFoundError when absent.
func (r *InMemoryOrderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	r.mu.RLock()
	stored, ok := r.orders[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(stored)
}

// Delete removes the order with the given id. Absent ids are a no-op.
func (r *InMemoryOrderRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	delete(r.orders, id)
	r.mu.Unlock()
	return nil
}

// GetAll returns a point-in-time snapshot copy of every stored order.
func (r *InMemoryOrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*order.Order, 0, len(r.orders))
	for _, stored := range r.orders {
		snapshot, err := cloneOrder(stored)
		if err != nil {
			return nil, err
		}
		orders = append(orders, snapshot)
	}
	return orders, nil
}

// GetAllInStatus returns a snapshot of every order currently in the given status.
func (r *InMemoryOrderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*order.Order, 0)
	for _, stored := range r.orders {
		if stored.Status() != status {
			continue
		}
		snapshot, err := cloneOrder(stored)
		if err != nil {
			return nil, err
		}
		orders = append(orders, snapshot)
	}
	return orders, nil
}

// cloneOrder rebuilds an independent copy of an order through the domain
// restoration factory, preserving timestamps and history.
func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Customer(),
		o.Total(),
		o.Status(),
		o.CreatedAt(),
		o.UpdatedAt(),
		o.History(),
	)
}
