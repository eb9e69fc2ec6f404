package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetPartnerShipmentsQueryIsNotConstructed = errors.New(
		"GetPartnerShipmentsQuery must be created via NewGetPartnerShipmentsQuery constructor",
	)
)

// GetPartnerShipmentsQuery lists every shipment assigned to one delivery
// partner. When activeOnly is set, shipments whose derived status is
// terminal are filtered out, which gives the partner its current workload.
type GetPartnerShipmentsQuery struct {
	partnerID  kernel.UUID
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewGetPartnerShipmentsQuery creates a listing query for the given partner.
func NewGetPartnerShipmentsQuery(partnerID kernel.UUID, activeOnly bool) (GetPartnerShipmentsQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetPartnerShipmentsQuery{}, err
	}

	return GetPartnerShipmentsQuery{
		partnerID:  partnerID,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// PartnerID returns the partner whose shipments are listed.
func (q GetPartnerShipmentsQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// ActiveOnly reports whether terminal shipments are excluded.
func (q GetPartnerShipmentsQuery) ActiveOnly() bool {
	return q.activeOnly
}

// Validate ensures the query was created through the constructor.
func (q GetPartnerShipmentsQuery) Validate() error {
	return errors.Join(
		q.guard.Validate(ErrGetPartnerShipmentsQueryIsNotConstructed),
		q.partnerID.Validate(),
	)
}
