package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrAddShipmentTagCommandIsNotConstructed = errors.New(
	"AddShipmentTagCommand must be created via NewAddShipmentTagCommand constructor",
)

// AddShipmentTagCommand represents a seller's request to attach a handling
// tag to a shipment they own. Attaching an already-present tag succeeds
// without effect.
type AddShipmentTagCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	sellerID   kernel.UUID
	tag        shipment.TagName

	guard guard.ConstructorGuard
}

// NewAddShipmentTagCommand creates a command to attach a handling tag.
func NewAddShipmentTagCommand(
	shipmentID kernel.UUID,
	sellerID kernel.UUID,
	tag shipment.TagName,
) (AddShipmentTagCommand, error) {
	command := AddShipmentTagCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setSellerID(sellerID),
		command.setTag(tag),
	); err != nil {
		return AddShipmentTagCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddShipmentTagCommand) Validate() error {
	return c.guard.Validate(ErrAddShipmentTagCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to tag.
func (c AddShipmentTagCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// SellerID returns the identity of the acting seller.
func (c AddShipmentTagCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Tag returns the handling tag to attach.
func (c AddShipmentTagCommand) Tag() shipment.TagName {
	return c.tag
}

func (c *AddShipmentTagCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AddShipmentTagCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *AddShipmentTagCommand) setTag(tag shipment.TagName) error {
	if err := tag.Validate(); err != nil {
		return err
	}
	c.tag = tag
	return nil
}
