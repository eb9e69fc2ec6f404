package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrRemoveShipmentTagCommandIsNotConstructed = errors.New(
	"RemoveShipmentTagCommand must be created via NewRemoveShipmentTagCommand constructor",
)

// RemoveShipmentTagCommand represents a seller's request to detach a handling
// tag from a shipment they own. Removing a tag that is not attached fails
// with an object-not-found error.
type RemoveShipmentTagCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	sellerID   kernel.UUID
	tag        shipment.TagName

	guard guard.ConstructorGuard
}

// NewRemoveShipmentTagCommand creates a command to detach a handling tag.
func NewRemoveShipmentTagCommand(
	shipmentID kernel.UUID,
	sellerID kernel.UUID,
	tag shipment.TagName,
) (RemoveShipmentTagCommand, error) {
	command := RemoveShipmentTagCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setSellerID(sellerID),
		command.setTag(tag),
	); err != nil {
		return RemoveShipmentTagCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveShipmentTagCommand) Validate() error {
	return c.guard.Validate(ErrRemoveShipmentTagCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to untag.
func (c RemoveShipmentTagCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// SellerID returns the identity of the acting seller.
func (c RemoveShipmentTagCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Tag returns the handling tag to detach.
func (c RemoveShipmentTagCommand) Tag() shipment.TagName {
	return c.tag
}

func (c *RemoveShipmentTagCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *RemoveShipmentTagCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *RemoveShipmentTagCommand) setTag(tag shipment.TagName) error {
	if err := tag.Validate(); err != nil {
		return err
	}
	c.tag = tag
	return nil
}
