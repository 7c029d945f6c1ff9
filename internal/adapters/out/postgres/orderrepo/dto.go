// Package orderrepo provides data transfer objects and mapping functions for
// order persistence in PostgreSQL. This package implements the repository
// pattern for the order aggregate, handling the conversion between domain
// entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Identifiers come from the table's sequence, which keeps assignment
// monotonic across restarts. Domain timestamps are authoritative, so GORM's
// automatic time tracking is disabled on both columns.
type OrderDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Customer  string
	Total     float64
	Status    int                   `gorm:"index"`
	CreatedAt time.Time             `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time             `gorm:"autoUpdateTime:false"`
	History   []StatusTransitionDTO `gorm:"serializer:json"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusTransitionDTO represents one status-history entry, serialized as
// JSON inside the order row.
type StatusTransitionDTO struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	history := aggregate.History()
	historyDTOs := make([]StatusTransitionDTO, 0, len(history))
	for _, transition := range history {
		historyDTOs = append(historyDTOs, StatusTransitionDTO{
			Status:    int(transition.Status),
			Timestamp: transition.Timestamp,
		})
	}

	return OrderDTO{
		ID:        aggregate.ID(),
		Customer:  aggregate.Customer(),
		Total:     aggregate.Total(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		History:   historyDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate using the domain
// restoration factory. Timestamps are normalized back to UTC since the
// driver returns them in the session time zone.
func toDomain(dto OrderDTO) (*order.Order, error) {
	history := make([]order.StatusTransition, 0, len(dto.History))
	for _, transition := range dto.History {
		history = append(history, order.StatusTransition{
			Status:    order.Status(transition.Status),
			Timestamp: transition.Timestamp.UTC(),
		})
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Customer,
		dto.Total,
		order.Status(dto.Status),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		history,
	)
}
