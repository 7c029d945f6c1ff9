package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// AdvanceStaleOrdersCommandHandler scans storage for orders that have sat in
// the waiting status longer than the configured delay and advances each of
// them to the next status through the regular transition handler, so every
// automated move goes through the same per-order locking and state-machine
// validation as a user-initiated one.
//
// The handler remembers ids it has already advanced and skips them on later
// scans. The set only suppresses duplicate work within one handler instance;
// correctness does not depend on it because a replayed transition is rejected
// by the state machine anyway.
//
// A failure on one order never aborts the scan. Losing the race for an order
// that something else already moved is expected and logged at debug level;
// any other per-order error is logged and the scan continues.
type AdvanceStaleOrdersCommandHandler struct {
	orders      ports.OrderRepository
	transitions *TransitionOrderCommandHandler

	waiting order.Status
	next    order.Status
	delay   time.Duration

	processed map[int64]struct{}

	logger *slog.Logger
}

// NewAdvanceStaleOrdersCommandHandler creates a handler that advances orders
// from waiting to next once they have been idle for at least delay.
func NewAdvanceStaleOrdersCommandHandler(
	orders ports.OrderRepository,
	transitions *TransitionOrderCommandHandler,
	waiting order.Status,
	next order.Status,
	delay time.Duration,
	logger *slog.Logger,
) *AdvanceStaleOrdersCommandHandler {
	return &AdvanceStaleOrdersCommandHandler{
		orders:      orders,
		transitions: transitions,
		waiting:     waiting,
		next:        next,
		delay:       delay,
		processed:   make(map[int64]struct{}),
		logger:      logger.With("component", "AdvanceStaleOrdersCommandHandler"),
	}
}

// Handle runs one advancement scan and returns the number of orders advanced.
//
// The snapshot of waiting orders is taken without the per-order locks, so an
// order may change status between the snapshot and its transition; the
// transition handler revalidates under the lock and such orders are simply
// skipped.
func (h *AdvanceStaleOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceStaleOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	waiting, err := h.orders.GetAllInStatus(ctx, h.waiting)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-h.delay)

	advanced := 0
	for _, candidate := range waiting {
		if _, done := h.processed[candidate.ID()]; done {
			continue
		}

		if candidate.UpdatedAt().After(cutoff) {
			continue
		}

		transitionCommand, err := NewTransitionOrderCommand(candidate.ID(), h.next)
		if err != nil {
			h.logger.Error("failed to build transition command",
				"orderID", candidate.ID(), "error", err)
			continue
		}

		if _, err := h.transitions.Handle(ctx, transitionCommand); err != nil {
			if errors.Is(err, order.ErrInvalidTransition) {
				h.logger.Debug("order moved concurrently, skipping",
					"orderID", candidate.ID(), "error", err)
				continue
			}

			h.logger.Error("failed to advance order",
				"orderID", candidate.ID(), "error", err)
			continue
		}

		h.processed[candidate.ID()] = struct{}{}
		advanced++
	}

	return advanced, nil
}

// IsProcessed reports whether the handler has already advanced the given id.
func (h *AdvanceStaleOrdersCommandHandler) IsProcessed(orderID int64) bool {
	_, done := h.processed[orderID]
	return done
}

// ProcessedCount returns the number of ids advanced so far.
func (h *AdvanceStaleOrdersCommandHandler) ProcessedCount() int {
	return len(h.processed)
}

// Reset clears the duplicate-suppression set.
func (h *AdvanceStaleOrdersCommandHandler) Reset() {
	h.processed = make(map[int64]struct{})
}
