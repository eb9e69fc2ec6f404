package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var (
	ErrUpdateShipmentCommandIsNotConstructed = errors.New(
		"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
	)
	ErrNothingToUpdate               = errors.New("update carries no fields")
	ErrStatusIsInvalid               = errors.New("status is invalid")
	ErrVerificationCodeIsRequired    = errors.New("verification code is required to record delivery")
	ErrCancelledStatusIsSellerAction = errors.New("cancellation is performed by the seller, not the partner")
)

// UpdateShipmentCommand represents a delivery partner's progress update on an
// assigned shipment. Optional fields left nil are inherited from the latest
// timeline event; an update carrying only a new delivery estimate changes the
// record without appending an event.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID        kernel.UUID
	partnerID         kernel.UUID
	location          *kernel.Zipcode
	status            *shipment.Status
	description       string
	estimatedDelivery *time.Time
	verificationCode  *string

	guard guard.ConstructorGuard
}

// NewUpdateShipmentCommand creates a command to record shipment progress.
// The partner identity comes from the access token. Recording Delivered
// requires the customer's verification code; recording Cancelled is refused
// here because cancellation belongs to the seller.
func NewUpdateShipmentCommand(
	shipmentID kernel.UUID,
	partnerID kernel.UUID,
	location *kernel.Zipcode,
	status *shipment.Status,
	description string,
	estimatedDelivery *time.Time,
	verificationCode *string,
) (UpdateShipmentCommand, error) {
	command := UpdateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setPartnerID(partnerID),
		command.setLocation(location),
		command.setStatus(status),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	command.description = description
	command.estimatedDelivery = estimatedDelivery
	command.verificationCode = verificationCode

	if !command.appendsEvent() && command.estimatedDelivery == nil {
		return UpdateShipmentCommand{}, ErrNothingToUpdate
	}
	if command.status != nil && *command.status == shipment.Delivered && command.verificationCode == nil {
		return UpdateShipmentCommand{}, ErrVerificationCodeIsRequired
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment being updated.
func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// PartnerID returns the identity of the acting delivery partner.
func (c UpdateShipmentCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Location returns the scan location, or nil to inherit the previous one.
func (c UpdateShipmentCommand) Location() *kernel.Zipcode {
	return c.location
}

// Status returns the new status, or nil to inherit the previous one.
func (c UpdateShipmentCommand) Status() *shipment.Status {
	return c.status
}

// Description returns the event description; empty means derive it from the status.
func (c UpdateShipmentCommand) Description() string {
	return c.description
}

// EstimatedDelivery returns the new delivery estimate, or nil to keep the current one.
func (c UpdateShipmentCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

// VerificationCode returns the customer's delivery code, or nil.
func (c UpdateShipmentCommand) VerificationCode() *string {
	return c.verificationCode
}

// appendsEvent reports whether the update carries any event field. An update
// whose only change is the delivery estimate leaves the timeline untouched.
func (c UpdateShipmentCommand) appendsEvent() bool {
	return c.location != nil || c.status != nil || c.description != ""
}

func (c *UpdateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *UpdateShipmentCommand) setLocation(location *kernel.Zipcode) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	c.location = location
	return nil
}

func (c *UpdateShipmentCommand) setStatus(status *shipment.Status) error {
	if status != nil {
		if !status.IsValid() {
			return ErrStatusIsInvalid
		}
		if *status == shipment.Cancelled {
			return ErrCancelledStatusIsSellerAction
		}
	}
	c.status = status
	return nil
}
