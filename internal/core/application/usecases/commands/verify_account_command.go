package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var (
	ErrVerifyAccountCommandIsNotConstructed = errors.New(
		"VerifyAccountCommand must be created via NewVerifyAccountCommand constructor",
	)
	ErrVerificationTokenIsRequired = errors.New("verification token is required")
)

// VerifyAccountCommand represents following the emailed verification link.
// The token names the account and its kind; no other input is needed.
type VerifyAccountCommand struct { //nolint:recvcheck //using for validation
	token string

	guard guard.ConstructorGuard
}

// NewVerifyAccountCommand creates a command to verify an account email.
func NewVerifyAccountCommand(token string) (VerifyAccountCommand, error) {
	command := VerifyAccountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setToken(token); err != nil {
		return VerifyAccountCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyAccountCommand) Validate() error {
	return c.guard.Validate(ErrVerifyAccountCommandIsNotConstructed)
}

// Token returns the signed verification token.
func (c VerifyAccountCommand) Token() string {
	return c.token
}

func (c *VerifyAccountCommand) setToken(token string) error {
	if token == "" {
		return ErrVerificationTokenIsRequired
	}
	c.token = token
	return nil
}
