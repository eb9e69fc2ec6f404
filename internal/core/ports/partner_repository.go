package ports

import (
	"context"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
)

// PartnerRepository defines the persistence contract for delivery partner
// aggregates. Restored partners carry their active shipment count, computed
// from the shipments table at load time.
type PartnerRepository interface {
	// Add persists a new delivery partner to storage.
	Add(ctx context.Context, aggregate *account.DeliveryPartner) error

	// Update persists changes to an existing delivery partner.
	Update(ctx context.Context, aggregate *account.DeliveryPartner) error

	// Get retrieves a delivery partner by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.DeliveryPartner, error)

	// GetByEmail retrieves a delivery partner by its login email.
	GetByEmail(ctx context.Context, email string) (*account.DeliveryPartner, error)

	// GetCandidatesForDestination retrieves verified partners that declare
	// the destination as serviceable, in stable registration order.
	// Implementations lock the returned partner rows until the surrounding
	// transaction ends so concurrent dispatches serialize on the same
	// candidate set.
	GetCandidatesForDestination(
		ctx context.Context, destination kernel.Zipcode,
	) ([]*account.DeliveryPartner, error)
}
