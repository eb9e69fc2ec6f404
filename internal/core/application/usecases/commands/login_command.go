package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/pkg/guard"
)

var (
	ErrLoginCommandIsNotConstructed = errors.New(
		"LoginCommand must be created via NewLoginCommand constructor",
	)
	ErrPasswordIsRequired = errors.New("password is required")
)

// LoginCommand represents a login attempt by either account kind.
type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string
	role     account.Role

	guard guard.ConstructorGuard
}

// NewLoginCommand creates a command to authenticate an account.
func NewLoginCommand(email string, password string, role account.Role) (LoginCommand, error) {
	command := LoginCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setEmail(email),
		command.setPassword(password),
		command.setRole(role),
	); err != nil {
		return LoginCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

// Email returns the login email address.
func (c LoginCommand) Email() string {
	return c.email
}

// Password returns the plaintext password candidate.
func (c LoginCommand) Password() string {
	return c.password
}

// Role returns which account kind is logging in.
func (c LoginCommand) Role() account.Role {
	return c.role
}

func (c *LoginCommand) setEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrEmailIsInvalid
	}
	c.email = strings.ToLower(email)
	return nil
}

func (c *LoginCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}
	c.password = password
	return nil
}

func (c *LoginCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
