// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, converting between domain entities and their database
// representation: the shipment row, its append-only event rows, its tag
// array, and the optional review row.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Tags live in a text array on the shipment row; events and the
// review are child rows keyed by shipment ID.
type ShipmentDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SellerID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	PartnerID         *uuid.UUID     `gorm:"type:uuid;index"`
	Content           string         `gorm:"type:varchar(255);not null"`
	Weight            float64        `gorm:"type:decimal(5,2);not null"`
	Destination       string         `gorm:"type:varchar(16);not null"`
	CustomerEmail     string         `gorm:"type:varchar(255);not null"`
	CustomerPhone     *string        `gorm:"type:varchar(32)"`
	CreatedAt         time.Time      `gorm:"not null"`
	EstimatedDelivery time.Time      `gorm:"not null;index"`
	Tags              pq.StringArray `gorm:"type:text[]"`
	Events            []EventDTO     `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Review            *ReviewDTO     `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// EventDTO represents one timeline event row. Event rows are append-only:
// they are inserted once and never updated or deleted while the shipment
// exists.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(32);not null"`
	Location    string    `gorm:"type:varchar(16);not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for timeline events.
func (EventDTO) TableName() string {
	return "shipment_events"
}

// ReviewDTO represents the customer review row. At most one review exists
// per shipment, enforced by the unique index on shipment_id.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Rating     int       `gorm:"not null"`
	Comment    *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for reviews.
func (ReviewDTO) TableName() string {
	return "reviews"
}

// fromDomain converts a shipment domain aggregate to its database
// representation, including child event and review rows.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	var partnerID *uuid.UUID
	if id := aggregate.PartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	events := make([]EventDTO, 0, len(aggregate.Timeline()))
	for _, event := range aggregate.Timeline() {
		events = append(events, EventDTO{
			ID:          event.ID().Bytes(),
			ShipmentID:  shipmentID,
			Status:      event.Status().String(),
			Location:    event.Location().String(),
			Description: event.Description(),
			CreatedAt:   event.CreatedAt(),
		})
	}

	tags := make(pq.StringArray, 0, len(aggregate.Tags()))
	for _, tag := range aggregate.Tags() {
		tags = append(tags, tag.String())
	}

	var review *ReviewDTO
	if r := aggregate.Review(); r != nil {
		review = &ReviewDTO{
			ID:         r.ID().Bytes(),
			ShipmentID: shipmentID,
			Rating:     r.Rating(),
			Comment:    r.Comment(),
			CreatedAt:  r.CreatedAt(),
		}
	}

	return ShipmentDTO{
		ID:                shipmentID,
		SellerID:          aggregate.SellerID().Bytes(),
		PartnerID:         partnerID,
		Content:           aggregate.Content(),
		Weight:            aggregate.Weight(),
		Destination:       aggregate.Destination().String(),
		CustomerEmail:     aggregate.CustomerEmail(),
		CustomerPhone:     aggregate.CustomerPhone(),
		CreatedAt:         aggregate.CreatedAt(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		Tags:              tags,
		Events:            events,
		Review:            review,
	}
}

// toDomain converts a database DTO to a shipment domain aggregate,
// reconstructing the timeline, tags, and review via RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if pErr != nil {
			return nil, pErr
		}
		partnerID = &pID
	}

	destination, err := kernel.NewZipcode(dto.Destination)
	if err != nil {
		return nil, err
	}

	timeline := make([]*shipment.Event, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		event, eventErr := eventToDomain(id, eventDTO)
		if eventErr != nil {
			return nil, eventErr
		}
		timeline = append(timeline, event)
	}

	tags := make([]shipment.TagName, 0, len(dto.Tags))
	for _, name := range dto.Tags {
		tag, tagErr := shipment.NewTagName(name)
		if tagErr != nil {
			return nil, tagErr
		}
		tags = append(tags, tag)
	}

	var review *shipment.Review
	if dto.Review != nil {
		reviewID, reviewErr := kernel.UUIDFromBytes(dto.Review.ID[:])
		if reviewErr != nil {
			return nil, reviewErr
		}
		review, reviewErr = shipment.RestoreReview(
			reviewID, dto.Review.CreatedAt, dto.Review.Rating, dto.Review.Comment,
		)
		if reviewErr != nil {
			return nil, reviewErr
		}
	}

	return shipment.RestoreShipment(
		id,
		dto.Content,
		dto.Weight,
		destination,
		dto.CustomerEmail,
		dto.CustomerPhone,
		sellerID,
		partnerID,
		dto.CreatedAt,
		dto.EstimatedDelivery,
		timeline,
		tags,
		review,
	)
}

// eventToDomain converts an event row to a domain timeline event.
func eventToDomain(shipmentID kernel.UUID, dto EventDTO) (*shipment.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewZipcode(dto.Location)
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreEvent(id, shipmentID, dto.CreatedAt, location, status, dto.Description)
}
