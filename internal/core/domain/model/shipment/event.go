package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

// ErrEventIsNotConstructed is returned when using an Event that was not
// created via NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is a single immutable entry in a shipment's timeline. Once created
// an event never changes; corrections are made by appending further events.
//
// The ordering of events by creation time is the source of truth for the
// shipment's derived status. Insertion order carries no meaning.
type Event struct {
	// id uniquely identifies the event
	id kernel.UUID
	// shipmentID is the owning shipment
	shipmentID kernel.UUID
	// createdAt is the UTC instant the event was recorded; it defines
	// timeline order
	createdAt time.Time
	// location is the postal area where the event was recorded
	location kernel.Zipcode
	// status is the delivery state this event records
	status Status
	// description is the human-readable summary shown on the tracking page
	description string

	guard guard.ConstructorGuard
}

// NewEvent creates a timeline event. All fields are required; description
// defaulting and location/status inheritance are the aggregate's concern
// (see Shipment.AppendEvent), not the event's.
func NewEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	createdAt time.Time,
	location kernel.Zipcode,
	status Status,
	description string,
) (*Event, error) {
	event := &Event{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		event.setID(id),
		event.setShipmentID(shipmentID),
		event.setCreatedAt(createdAt),
		event.setLocation(location),
		event.setStatus(status),
		event.setDescription(description),
	); err != nil {
		return nil, err
	}

	return event, nil
}

// RestoreEvent reconstructs an event from persistent storage.
// Behaves identically to NewEvent; it exists so repositories read naturally.
func RestoreEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	createdAt time.Time,
	location kernel.Zipcode,
	status Status,
	description string,
) (*Event, error) {
	return NewEvent(id, shipmentID, createdAt, location, status, description)
}

// Validate checks the event was properly constructed.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the unique identifier of the event.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// ShipmentID returns the identifier of the owning shipment.
func (e *Event) ShipmentID() kernel.UUID {
	return e.shipmentID
}

// CreatedAt returns the UTC instant the event was recorded.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// Location returns the postal area where the event was recorded.
func (e *Event) Location() kernel.Zipcode {
	return e.location
}

// Status returns the delivery state this event records.
func (e *Event) Status() Status {
	return e.status
}

// Description returns the human-readable summary of the event.
func (e *Event) Description() string {
	return e.description
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.shipmentID = id
	return nil
}

func (e *Event) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	e.createdAt = createdAt.UTC()
	return nil
}

func (e *Event) setLocation(location kernel.Zipcode) error {
	if err := location.Validate(); err != nil {
		return err
	}
	e.location = location
	return nil
}

func (e *Event) setStatus(status Status) error {
	if !status.IsValid() {
		return ErrStatusIsInvalid
	}
	e.status = status
	return nil
}

func (e *Event) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}
	e.description = description
	return nil
}

// defaultDescription derives an event description from its status when the
// caller supplied none. The fallback names the scan location so in-transit
// events remain informative on the tracking page.
func defaultDescription(status Status, location kernel.Zipcode) string {
	switch status {
	case Placed:
		return "Assigned to delivery partner, yet to be picked up"
	case OutForDelivery:
		return "Shipment out for delivery"
	case Delivered:
		return "Shipment delivered to the customer"
	case Cancelled:
		return "Shipment has been cancelled by the seller"
	default:
		return fmt.Sprintf("Shipment in transit, last scanned at %s", location)
	}
}
