package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates. Implementations persist the full aggregate: the shipment row,
// its timeline events, tags, and the optional review.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	// Timeline events are append-only: existing event rows are never
	// modified, only new ones inserted.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier,
	// including its timeline, tags, and review.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
}
