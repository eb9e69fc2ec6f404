package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetSellerShipmentsQueryIsNotConstructed = errors.New(
		"GetSellerShipmentsQuery must be created via NewGetSellerShipmentsQuery constructor",
	)
)

// GetSellerShipmentsQuery lists every shipment created by one seller,
// newest first, as summary rows with their derived statuses.
type GetSellerShipmentsQuery struct {
	sellerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSellerShipmentsQuery creates a listing query for the given seller.
func NewGetSellerShipmentsQuery(sellerID kernel.UUID) (GetSellerShipmentsQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerShipmentsQuery{}, err
	}

	return GetSellerShipmentsQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// SellerID returns the seller whose shipments are listed.
func (q GetSellerShipmentsQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// Validate ensures the query was created through the constructor.
func (q GetSellerShipmentsQuery) Validate() error {
	return errors.Join(
		q.guard.Validate(ErrGetSellerShipmentsQueryIsNotConstructed),
		q.sellerID.Validate(),
	)
}
