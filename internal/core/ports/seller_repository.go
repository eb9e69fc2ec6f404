package ports

import (
	"context"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
)

// SellerRepository defines the persistence contract for seller aggregates.
type SellerRepository interface {
	// Add persists a new seller to storage.
	Add(ctx context.Context, aggregate *account.Seller) error

	// Update persists changes to an existing seller.
	Update(ctx context.Context, aggregate *account.Seller) error

	// Get retrieves a seller by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Seller, error)

	// GetByEmail retrieves a seller by its login email.
	GetByEmail(ctx context.Context, email string) (*account.Seller, error)
}
