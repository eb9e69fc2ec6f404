// Package auth implements the token codec and password hasher ports with
// HMAC-signed JWTs and bcrypt.
package auth

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSigningKeyIsRequired = errors.New("signing key is required")

// tokenClaims is the JWT payload. Role is empty for review tokens, whose
// subject is a shipment rather than an account.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
}

// JWTTokenCodec mints and verifies HMAC-SHA256 signed tokens. One codec
// signs every token purpose; the purpose claim keeps them from being
// interchangeable.
type JWTTokenCodec struct {
	signingKey []byte
}

// NewJWTTokenCodec creates a codec signing with the given secret key.
func NewJWTTokenCodec(signingKey []byte) (*JWTTokenCodec, error) {
	if len(signingKey) == 0 {
		return nil, ErrSigningKeyIsRequired
	}

	return &JWTTokenCodec{signingKey: signingKey}, nil
}

// Issue mints a signed token for the given claims with the given lifetime.
func (c *JWTTokenCodec) Issue(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	if err := claims.SubjectID.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.SubjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:    claims.Role.String(),
		Purpose: string(claims.Purpose),
	})

	return token.SignedString(c.signingKey)
}

// Verify parses a token and returns its claims. Every failure mode, from a
// bad signature to a purpose mismatch, collapses into ErrTokenInvalid so
// callers cannot leak why a token was rejected.
func (c *JWTTokenCodec) Verify(token string, expected ports.TokenPurpose) (ports.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(_ *jwt.Token) (any, error) { return c.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, ports.ErrTokenInvalid
	}

	if claims.Purpose != string(expected) {
		return ports.TokenClaims{}, ports.ErrTokenInvalid
	}

	subjectID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return ports.TokenClaims{}, ports.ErrTokenInvalid
	}

	return ports.TokenClaims{
		SubjectID: subjectID,
		Role:      account.Role(claims.Role),
		Purpose:   expected,
	}, nil
}
