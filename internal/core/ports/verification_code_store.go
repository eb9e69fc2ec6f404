package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// VerificationCodeStore holds the one-time codes that gate the delivered
// transition. A code is minted when a shipment goes out for delivery, checked
// when the partner records delivery, and removed once spent so a replay of
// the same code fails.
//
// Implementations return an object-not-found error from Get when no code is
// stored for the shipment.
type VerificationCodeStore interface {
	// Put stores the code for a shipment, replacing any previous one.
	Put(ctx context.Context, shipmentID kernel.UUID, code string) error

	// Get returns the stored code for a shipment.
	Get(ctx context.Context, shipmentID kernel.UUID) (string, error)

	// Delete removes the stored code for a shipment. Deleting a missing
	// code is not an error.
	Delete(ctx context.Context, shipmentID kernel.UUID) error
}
