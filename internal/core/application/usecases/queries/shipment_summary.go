package queries

import (
	"time"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentSummaryResponse is a one-row listing view of a shipment. Status
// is derived in SQL from the chronologically latest timeline event so list
// endpoints never load full aggregates.
type ShipmentSummaryResponse struct {
	ShipmentID        kernel.UUID
	Content           string
	Destination       string
	Status            string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// summarySelect joins each shipment with its latest event via a lateral
// subquery. COALESCE covers shipments with an empty timeline.
const summarySelect = `
	SELECT
		s.id,
		s.content,
		s.destination,
		COALESCE(e.status, 'unknown') AS status,
		s.created_at,
		s.estimated_delivery
	FROM shipments s
	LEFT JOIN LATERAL (
		SELECT status
		FROM shipment_events
		WHERE shipment_id = s.id
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	) e ON TRUE
`

// scanShipmentSummaries runs a summary query and scans every row.
func scanShipmentSummaries(db *gorm.DB, query string, args ...any) ([]ShipmentSummaryResponse, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ShipmentSummaryResponse, 0)
	for rows.Next() {
		var summary ShipmentSummaryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&summary.Content,
			&summary.Destination,
			&summary.Status,
			&summary.CreatedAt,
			&summary.EstimatedDelivery,
		)
		if err != nil {
			return nil, err
		}

		summary.ShipmentID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
