package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrRegisterPartnerCommandIsNotConstructed = errors.New(
		"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
	)
	ErrServiceableZipcodesAreRequired = errors.New("at least one serviceable zipcode is required")
)

// RegisterPartnerCommand represents a delivery partner account registration
// request, including the partner's service areas and concurrent capacity.
type RegisterPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID           kernel.UUID
	name                string
	email               string
	password            string
	serviceableZipcodes []kernel.Zipcode
	maxCapacity         int

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand creates a command to register a partner account.
func NewRegisterPartnerCommand(
	partnerID kernel.UUID,
	name string,
	email string,
	password string,
	serviceableZipcodes []kernel.Zipcode,
	maxCapacity int,
) (RegisterPartnerCommand, error) {
	command := RegisterPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPartnerID(partnerID),
		command.setName(name),
		command.setEmail(email),
		command.setPassword(password),
		command.setServiceableZipcodes(serviceableZipcodes),
		command.setMaxCapacity(maxCapacity),
	); err != nil {
		return RegisterPartnerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

// PartnerID returns the identifier the new account will carry.
func (c RegisterPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the carrier's display name.
func (c RegisterPartnerCommand) Name() string {
	return c.name
}

// Email returns the login email address.
func (c RegisterPartnerCommand) Email() string {
	return c.email
}

// Password returns the plaintext password; it is hashed before leaving the handler.
func (c RegisterPartnerCommand) Password() string {
	return c.password
}

// ServiceableZipcodes returns the partner's declared service areas.
func (c RegisterPartnerCommand) ServiceableZipcodes() []kernel.Zipcode {
	return c.serviceableZipcodes
}

// MaxCapacity returns the partner's concurrent shipment limit.
func (c RegisterPartnerCommand) MaxCapacity() int {
	return c.maxCapacity
}

func (c *RegisterPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *RegisterPartnerCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterPartnerCommand) setEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrEmailIsInvalid
	}
	c.email = email
	return nil
}

func (c *RegisterPartnerCommand) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordIsTooShort
	}
	c.password = password
	return nil
}

func (c *RegisterPartnerCommand) setServiceableZipcodes(zipcodes []kernel.Zipcode) error {
	if len(zipcodes) == 0 {
		return ErrServiceableZipcodesAreRequired
	}
	for _, zipcode := range zipcodes {
		if err := zipcode.Validate(); err != nil {
			return err
		}
	}
	c.serviceableZipcodes = zipcodes
	return nil
}

func (c *RegisterPartnerCommand) setMaxCapacity(maxCapacity int) error {
	if maxCapacity < 0 {
		return errs.NewValueIsOutOfRangeError("max capacity", maxCapacity, 0, "unbounded")
	}
	c.maxCapacity = maxCapacity
	return nil
}
