package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrContentIsRequired       = errors.New("content is required")
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
)

// CreateShipmentCommand represents a seller's request to submit a shipment.
// Submission assigns a delivery partner and records the first timeline event
// in one transaction; a shipment never exists unassigned.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	sellerID      kernel.UUID
	content       string
	weight        float64
	destination   kernel.Zipcode
	customerEmail string
	customerPhone *string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to submit a new shipment.
// The seller identity comes from the access token, never from the request
// body. Weight bounds are enforced by the domain at handling time.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	sellerID kernel.UUID,
	content string,
	weight float64,
	destination kernel.Zipcode,
	customerEmail string,
	customerPhone *string,
) (CreateShipmentCommand, error) {
	command := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setSellerID(sellerID),
		command.setContent(content),
		command.setDestination(destination),
		command.setCustomerEmail(customerEmail),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	command.weight = weight
	command.customerPhone = customerPhone
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier the new shipment will carry.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// SellerID returns the identity of the submitting seller.
func (c CreateShipmentCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Content returns the description of what is being shipped.
func (c CreateShipmentCommand) Content() string {
	return c.content
}

// Weight returns the declared shipment weight.
func (c CreateShipmentCommand) Weight() float64 {
	return c.weight
}

// Destination returns the delivery postal area.
func (c CreateShipmentCommand) Destination() kernel.Zipcode {
	return c.destination
}

// CustomerEmail returns the customer contact address.
func (c CreateShipmentCommand) CustomerEmail() string {
	return c.customerEmail
}

// CustomerPhone returns the optional customer phone number.
func (c CreateShipmentCommand) CustomerPhone() *string {
	return c.customerPhone
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateShipmentCommand) setContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentIsRequired
	}
	c.content = content
	return nil
}

func (c *CreateShipmentCommand) setDestination(destination kernel.Zipcode) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	c.destination = destination
	return nil
}

func (c *CreateShipmentCommand) setCustomerEmail(email string) error {
	if email == "" {
		return ErrCustomerEmailIsRequired
	}
	c.customerEmail = email
	return nil
}
