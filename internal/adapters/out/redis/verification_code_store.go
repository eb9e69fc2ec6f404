// Package redis implements the verification code store on Redis. Codes are
// plain string values under a per-shipment key with a TTL, so codes for
// shipments that never complete expire on their own.
package redis

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "shipping:verification-code:"

// VerificationCodeStore stores delivery verification codes in Redis.
type VerificationCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerificationCodeStore creates a store writing codes with the given
// lifetime. The lifetime only has to outlive the out-for-delivery leg;
// recording out-for-delivery again mints and stores a fresh code.
func NewVerificationCodeStore(client *redis.Client, ttl time.Duration) *VerificationCodeStore {
	return &VerificationCodeStore{
		client: client,
		ttl:    ttl,
	}
}

// Put stores the code for a shipment, replacing any previous one.
func (s *VerificationCodeStore) Put(ctx context.Context, shipmentID kernel.UUID, code string) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	return s.client.Set(ctx, codeKey(shipmentID), code, s.ttl).Err()
}

// Get returns the stored code for a shipment. Returns an object-not-found
// error when no code is stored.
func (s *VerificationCodeStore) Get(ctx context.Context, shipmentID kernel.UUID) (string, error) {
	if err := shipmentID.Validate(); err != nil {
		return "", err
	}

	code, err := s.client.Get(ctx, codeKey(shipmentID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.NewObjectNotFoundError("verification code", shipmentID.String())
	}
	if err != nil {
		return "", err
	}

	return code, nil
}

// Delete removes the stored code for a shipment. Deleting a missing code
// is not an error.
func (s *VerificationCodeStore) Delete(ctx context.Context, shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	return s.client.Del(ctx, codeKey(shipmentID)).Err()
}

func codeKey(shipmentID kernel.UUID) string {
	return codeKeyPrefix + shipmentID.String()
}
