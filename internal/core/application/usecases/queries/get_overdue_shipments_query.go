package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetOverdueShipmentsQueryIsNotConstructed = errors.New(
		"GetOverdueShipmentsQuery must be created via NewGetOverdueShipmentsQuery constructor",
	)
	ErrAsOfIsRequired = errors.New("as-of time is required")
)

// GetOverdueShipmentsQuery finds shipments whose estimated delivery time
// passed before the given instant while their derived status is still
// non-terminal. The background sweep uses it to flag deliveries running
// late.
type GetOverdueShipmentsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueShipmentsQuery creates an overdue sweep query evaluated
// against the given instant.
func NewGetOverdueShipmentsQuery(asOf time.Time) (GetOverdueShipmentsQuery, error) {
	if asOf.IsZero() {
		return GetOverdueShipmentsQuery{}, ErrAsOfIsRequired
	}

	return GetOverdueShipmentsQuery{
		asOf:  asOf.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// AsOf returns the instant overdueness is evaluated against.
func (q GetOverdueShipmentsQuery) AsOf() time.Time {
	return q.asOf
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueShipmentsQuery) Validate() error {
	if err := q.guard.Validate(ErrGetOverdueShipmentsQueryIsNotConstructed); err != nil {
		return err
	}
	if q.asOf.IsZero() {
		return ErrAsOfIsRequired
	}
	return nil
}

// OverdueShipmentResponse is one late shipment found by the sweep.
// PartnerID is nil for the degenerate case of an unassigned shipment.
type OverdueShipmentResponse struct {
	ShipmentID        kernel.UUID
	PartnerID         *kernel.UUID
	Status            string
	EstimatedDelivery time.Time
}
