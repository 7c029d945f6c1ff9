// Package orderrepo provides the file-backed implementation of the order
// repository. Orders are cached in memory and the complete state is
// rewritten to a JSON document on every mutation, so a restarted process
// reconstructs identical logical state including future id assignment.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/order"
)

// documentDTO is the on-disk representation of the entire repository:
// every order plus the next identifier to assign.
type documentDTO struct {
	Orders []orderDTO `json:"orders"`
	NextID int64      `json:"next_id"`
}

// orderDTO is the on-disk representation of a single order. Statuses are
// stored by canonical name and timestamps as RFC 3339 UTC instants with
// nanosecond precision, so a write-then-read round-trip reproduces
// identical field values.
type orderDTO struct {
	ID            int64                 `json:"id"`
	Customer      string                `json:"customer"`
	Total         float64               `json:"total"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	StatusHistory []statusTransitionDTO `json:"status_history,omitempty"`
}

// statusTransitionDTO is the on-disk representation of one history entry.
type statusTransitionDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order aggregate to its on-disk representation.
func fromDomain(aggregate *order.Order) orderDTO {
	history := aggregate.History()
	historyDTOs := make([]statusTransitionDTO, 0, len(history))
	for _, transition := range history {
		historyDTOs = append(historyDTOs, statusTransitionDTO{
			Status:    transition.Status.String(),
			Timestamp: transition.Timestamp,
		})
	}

	return orderDTO{
		ID:            aggregate.ID(),
		Customer:      aggregate.Customer(),
		Total:         aggregate.Total(),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		StatusHistory: historyDTOs,
	}
}

// toDomain reconstructs an order aggregate from its on-disk representation
// using the domain restoration factory, preserving timestamps and history.
func toDomain(dto orderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusTransition, 0, len(dto.StatusHistory))
	for _, transition := range dto.StatusHistory {
		transitionStatus, parseErr := order.ParseStatus(transition.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		history = append(history, order.StatusTransition{
			Status:    transitionStatus,
			Timestamp: transition.Timestamp,
		})
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Customer,
		dto.Total,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
		history,
	)
}
