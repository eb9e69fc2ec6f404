package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueShipmentsQueryHandler finds non-terminal shipments past their
// estimated delivery time.
type GetOverdueShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueShipmentsQueryHandler creates a handler backed by the given
// GORM database connection.
func NewGetOverdueShipmentsQueryHandler(db *gorm.DB) GetOverdueShipmentsQueryHandler {
	return GetOverdueShipmentsQueryHandler{db: db}
}

// Handle returns every overdue shipment ordered by how late it is, the
// most overdue first.
func (h GetOverdueShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueShipmentsQuery,
) ([]OverdueShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.partner_id,
			COALESCE(e.status, 'unknown') AS status,
			s.estimated_delivery
		FROM shipments s
		LEFT JOIN LATERAL (
			SELECT status
			FROM shipment_events
			WHERE shipment_id = s.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) e ON TRUE
		WHERE s.estimated_delivery < ?
			AND COALESCE(e.status, 'unknown') NOT IN (?, ?)
		ORDER BY s.estimated_delivery
	`, query.AsOf(), shipment.Delivered.String(), shipment.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overdue := make([]OverdueShipmentResponse, 0)
	for rows.Next() {
		var response OverdueShipmentResponse
		var id uuid.UUID
		var partnerID *uuid.UUID

		err = rows.Scan(&id, &partnerID, &response.Status, &response.EstimatedDelivery)
		if err != nil {
			return nil, err
		}

		response.ShipmentID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		if partnerID != nil {
			pID, pErr := kernel.UUIDFromBytes((*partnerID)[:])
			if pErr != nil {
				return nil, pErr
			}
			response.PartnerID = &pID
		}

		overdue = append(overdue, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
