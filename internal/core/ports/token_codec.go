package ports

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
)

// ErrTokenInvalid is returned when a presented token is malformed, expired,
// carries a bad signature, or was issued for a different purpose.
var ErrTokenInvalid = errors.New("token is invalid")

// TokenPurpose scopes a signed token to a single use. A token issued for one
// purpose never authorizes another.
type TokenPurpose string

const (
	// PurposeAccess authorizes API calls on behalf of an account.
	PurposeAccess TokenPurpose = "access"
	// PurposeEmailVerification authorizes completing account registration.
	PurposeEmailVerification TokenPurpose = "email-verification"
	// PurposeReview authorizes submitting a review for one delivered shipment.
	PurposeReview TokenPurpose = "review"
)

// TokenClaims is the signed payload of a token. SubjectID identifies the
// account (access, email verification) or the shipment (review).
type TokenClaims struct {
	SubjectID kernel.UUID
	Role      account.Role
	Purpose   TokenPurpose
}

// TokenCodec mints and verifies signed tokens. Verification enforces the
// signature, the expiry, and the expected purpose; any failure surfaces as
// ErrTokenInvalid without detail.
type TokenCodec interface {
	// Issue mints a signed token for the given claims with the given lifetime.
	Issue(claims TokenClaims, ttl time.Duration) (string, error)

	// Verify parses a token and returns its claims. Fails with
	// ErrTokenInvalid unless the token is well formed, unexpired, and
	// issued for the expected purpose.
	Verify(token string, expected TokenPurpose) (TokenClaims, error)
}
