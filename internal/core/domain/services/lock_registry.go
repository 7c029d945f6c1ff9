package services

import "sync"

// OrderLockRegistry hands out a mutual-exclusion handle per order id so
// that concurrent transition attempts on the same order serialize while
// unrelated orders never block each other.
//
// Handle creation is atomic: the registry's own mutex guards only the
// "does this id have a handle yet" decision, so two goroutines can never
// observe two different handles for the same id. Everything after lookup
// happens on the per-id handle alone.
//
// Handles are never destroyed while referenced. The registry grows in
// proportion to the number of distinct ids ever locked; that growth is an
// accepted tradeoff, not a leak, and keeps every handle safe to retain.
//
// Acquisition blocks indefinitely. The registry deliberately defines no
// timeout; callers that need a bound must enforce their own deadline
// before calling Lock.
type OrderLockRegistry struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewOrderLockRegistry creates an empty lock registry.
func NewOrderLockRegistry() *OrderLockRegistry {
	return &OrderLockRegistry{
		locks: make(map[int64]*sync.Mutex),
	}
}

// Lock acquires exclusive ownership of the handle for the given order id,
// creating the handle first if this id has never been locked. The call
// blocks until the handle is available.
//
// Returns the unlock function; callers must invoke it exactly once,
// typically via defer:
//
//	unlock := registry.Lock(orderID)
//	defer unlock()
func (r *OrderLockRegistry) Lock(orderID int64) func() {
	handle := r.handleFor(orderID)
	handle.Lock()
	return handle.Unlock
}

// handleFor returns the handle for an id, creating it under the registry
// mutex when absent. The registry mutex is held only for the map access,
// never across an acquisition, so contention on one id cannot stall
// lookups for other ids.
func (r *OrderLockRegistry) handleFor(orderID int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle, ok := r.locks[orderID]
	if !ok {
		handle = &sync.Mutex{}
		r.locks[orderID] = handle
	}
	return handle
}

// Size returns the number of distinct ids that currently own a handle.
// Intended for observability and tests.
func (r *OrderLockRegistry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
