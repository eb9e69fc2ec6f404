// Package queries contains the read side of the application layer. Query
// handlers bypass the domain aggregates and read directly from the database
// with raw SQL, returning flat response models shaped for the transport layer.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrTrackShipmentQueryIsNotConstructed = errors.New(
		"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
	)
)

// TrackShipmentQuery retrieves the public tracking view of a single shipment:
// its derived status, the full timeline sorted oldest first, tags with their
// handling instructions, and the customer review when one exists.
//
// Tracking is a public read. No authentication is required, so the response
// deliberately omits customer contact details and seller identity.
type TrackShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackShipmentQuery creates a tracking query for the given shipment.
func NewTrackShipmentQuery(shipmentID kernel.UUID) (TrackShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return TrackShipmentQuery{}, err
	}

	return TrackShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ShipmentID returns the identifier of the shipment being tracked.
func (q TrackShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// Validate ensures the query was created through the constructor.
func (q TrackShipmentQuery) Validate() error {
	return errors.Join(
		q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed),
		q.shipmentID.Validate(),
	)
}

// TimelineEntryResponse is one recorded event in the tracking timeline.
type TimelineEntryResponse struct {
	Status      string
	Location    string
	Description string
	CreatedAt   time.Time
}

// TagResponse is a handling tag together with its instruction text.
type TagResponse struct {
	Name        string
	Instruction string
}

// ReviewResponse is the customer review attached to a delivered shipment.
type ReviewResponse struct {
	Rating    int
	Comment   *string
	CreatedAt time.Time
}

// TrackShipmentQueryResponse is the public tracking view of a shipment.
// Status is derived from the latest timeline entry and is "unknown" when
// the timeline is empty.
type TrackShipmentQueryResponse struct {
	ShipmentID        kernel.UUID
	Content           string
	Destination       string
	Status            string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	Timeline          []TimelineEntryResponse
	Tags              []TagResponse
	Review            *ReviewResponse
}
