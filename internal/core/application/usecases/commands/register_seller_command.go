package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrRegisterSellerCommandIsNotConstructed = errors.New(
		"RegisterSellerCommand must be created via NewRegisterSellerCommand constructor",
	)
	ErrNameIsRequired     = errors.New("name is required")
	ErrEmailIsInvalid     = errors.New("email is invalid")
	ErrPasswordIsTooShort = errors.New("password must be at least 8 characters")
)

// minPasswordLength is the minimum accepted password length for both account kinds.
const minPasswordLength = 8

// RegisterSellerCommand represents a seller account registration request.
type RegisterSellerCommand struct { //nolint:recvcheck //using for validation
	sellerID kernel.UUID
	name     string
	email    string
	password string
	zipcode  kernel.Zipcode

	guard guard.ConstructorGuard
}

// NewRegisterSellerCommand creates a command to register a seller account.
func NewRegisterSellerCommand(
	sellerID kernel.UUID,
	name string,
	email string,
	password string,
	zipcode kernel.Zipcode,
) (RegisterSellerCommand, error) {
	command := RegisterSellerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSellerID(sellerID),
		command.setName(name),
		command.setEmail(email),
		command.setPassword(password),
	); err != nil {
		return RegisterSellerCommand{}, err
	}

	command.zipcode = zipcode

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterSellerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterSellerCommandIsNotConstructed)
}

// SellerID returns the identifier the new account will carry.
func (c RegisterSellerCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Name returns the merchant's display name.
func (c RegisterSellerCommand) Name() string {
	return c.name
}

// Email returns the login email address.
func (c RegisterSellerCommand) Email() string {
	return c.email
}

// Password returns the plaintext password; it is hashed before leaving the handler.
func (c RegisterSellerCommand) Password() string {
	return c.password
}

// Zipcode returns the seller's origin postal area; the zero value means the
// seller registered without one.
func (c RegisterSellerCommand) Zipcode() kernel.Zipcode {
	return c.zipcode
}

func (c *RegisterSellerCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *RegisterSellerCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterSellerCommand) setEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrEmailIsInvalid
	}
	c.email = email
	return nil
}

func (c *RegisterSellerCommand) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordIsTooShort
	}
	c.password = password
	return nil
}
