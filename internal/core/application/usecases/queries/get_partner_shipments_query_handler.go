package queries

import (
	"context"

	"shipping/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GetPartnerShipmentsQueryHandler lists a delivery partner's assigned
// shipments from the database as summary rows.
type GetPartnerShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerShipmentsQueryHandler creates a handler backed by the given
// GORM database connection.
func NewGetPartnerShipmentsQueryHandler(db *gorm.DB) GetPartnerShipmentsQueryHandler {
	return GetPartnerShipmentsQueryHandler{db: db}
}

// Handle returns shipments assigned to the partner, newest first, optionally
// restricted to non-terminal shipments.
func (h GetPartnerShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerShipmentsQuery,
) ([]ShipmentSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := summarySelect + `
		WHERE s.partner_id = ?
	`
	args := []any{query.PartnerID().Bytes()}

	if query.ActiveOnly() {
		sql += `AND COALESCE(e.status, 'unknown') NOT IN (?, ?)
		`
		args = append(args, shipment.Delivered.String(), shipment.Cancelled.String())
	}

	sql += `ORDER BY s.created_at DESC`

	return scanShipmentSummaries(h.db.WithContext(ctx), sql, args...)
}
