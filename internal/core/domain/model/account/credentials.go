package account

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
)

// ErrCredentialsAreNotConstructed is returned when using Credentials that were
// not created via NewCredentials.
var ErrCredentialsAreNotConstructed = errors.New("Credentials must be created via NewCredentials constructor")

// Credentials is the login identity of an account: the email address and the
// password hash. The domain never sees plaintext passwords; hashing and
// comparison live behind the PasswordHasher port.
type Credentials struct {
	email        string
	passwordHash string
	isSet        bool
}

// NewCredentials creates validated credentials from an email address and an
// already-hashed password.
func NewCredentials(email string, passwordHash string) (Credentials, error) {
	if email == "" || !strings.Contains(email, "@") {
		return Credentials{}, errs.NewValueIsInvalidError("email")
	}
	if passwordHash == "" {
		return Credentials{}, errs.NewValueIsRequiredError("password hash")
	}

	return Credentials{
		email:        strings.ToLower(email),
		passwordHash: passwordHash,
		isSet:        true,
	}, nil
}

// Email returns the normalized (lowercase) email address.
func (c Credentials) Email() string {
	return c.email
}

// PasswordHash returns the stored password hash.
func (c Credentials) PasswordHash() string {
	return c.passwordHash
}

// Validate checks the credentials were properly constructed.
func (c Credentials) Validate() error {
	if !c.isSet {
		return ErrCredentialsAreNotConstructed
	}
	return nil
}
