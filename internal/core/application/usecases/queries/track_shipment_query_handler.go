package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TrackShipmentQueryHandler serves the public tracking endpoint. It reads
// the shipment row, its timeline and its review directly with SQL, keeping
// the derived-status rule in one place: the latest event wins.
type TrackShipmentQueryHandler struct {
	db *gorm.DB
}

// NewTrackShipmentQueryHandler creates a handler backed by the given
// GORM database connection.
func NewTrackShipmentQueryHandler(db *gorm.DB) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{db: db}
}

// Handle loads the tracking view for one shipment. Returns an
// object-not-found error when no shipment with the requested ID exists.
func (h TrackShipmentQueryHandler) Handle(
	ctx context.Context,
	query TrackShipmentQuery,
) (TrackShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	response, err := h.loadShipment(ctx, query.ShipmentID())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	response.Timeline, err = h.loadTimeline(ctx, query.ShipmentID())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}
	if len(response.Timeline) > 0 {
		response.Status = response.Timeline[len(response.Timeline)-1].Status
	}

	response.Review, err = h.loadReview(ctx, query.ShipmentID())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	return response, nil
}

func (h TrackShipmentQueryHandler) loadShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) (TrackShipmentQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			content,
			destination,
			created_at,
			estimated_delivery,
			tags
		FROM shipments
		WHERE id = ?
	`, shipmentID.Bytes()).Row()

	var (
		id                uuid.UUID
		content           string
		destination       string
		createdAt         time.Time
		estimatedDelivery time.Time
		tags              pq.StringArray
	)

	err := row.Scan(&id, &content, &destination, &createdAt, &estimatedDelivery, &tags)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", shipmentID.String())
	}
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	tagResponses := make([]TagResponse, 0, len(tags))
	for _, name := range tags {
		tag, tagErr := shipment.NewTagName(name)
		if tagErr != nil {
			return TrackShipmentQueryResponse{}, tagErr
		}
		tagResponses = append(tagResponses, TagResponse{
			Name:        tag.String(),
			Instruction: tag.Instruction(),
		})
	}

	return TrackShipmentQueryResponse{
		ShipmentID:        responseID,
		Content:           content,
		Destination:       destination,
		Status:            shipment.Unknown.String(),
		CreatedAt:         createdAt,
		EstimatedDelivery: estimatedDelivery,
		Tags:              tagResponses,
	}, nil
}

func (h TrackShipmentQueryHandler) loadTimeline(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]TimelineEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			location,
			description,
			created_at
		FROM shipment_events
		WHERE shipment_id = ?
		ORDER BY created_at, id
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timeline := make([]TimelineEntryResponse, 0)
	for rows.Next() {
		var entry TimelineEntryResponse
		if err = rows.Scan(&entry.Status, &entry.Location, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, err
		}
		timeline = append(timeline, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeline, nil
}

func (h TrackShipmentQueryHandler) loadReview(
	ctx context.Context,
	shipmentID kernel.UUID,
) (*ReviewResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			rating,
			comment,
			created_at
		FROM reviews
		WHERE shipment_id = ?
	`, shipmentID.Bytes()).Row()

	var review ReviewResponse
	err := row.Scan(&review.Rating, &review.Comment, &review.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}
