package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSellerShipmentsQueryHandler lists a seller's shipments from the
// database as summary rows.
type GetSellerShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetSellerShipmentsQueryHandler creates a handler backed by the given
// GORM database connection.
func NewGetSellerShipmentsQueryHandler(db *gorm.DB) GetSellerShipmentsQueryHandler {
	return GetSellerShipmentsQueryHandler{db: db}
}

// Handle returns all shipments created by the seller, newest first.
// A seller with no shipments gets an empty slice, not an error.
func (h GetSellerShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetSellerShipmentsQuery,
) ([]ShipmentSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanShipmentSummaries(
		h.db.WithContext(ctx),
		summarySelect+`
		WHERE s.seller_id = ?
		ORDER BY s.created_at DESC
		`, query.SellerID().Bytes(),
	)
}
