// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence, with notifications dispatched only after commit.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PartnerRepoFactory provides access to the partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// SellerRepoFactory provides access to the seller repository within a transaction.
	SellerRepoFactory interface {
		SellerRepository() ports.SellerRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// SellerUoW manages transactions for seller account operations.
	SellerUoW interface {
		TxManager
		SellerRepoFactory
	}

	// SellerUoWFactory creates new seller unit of work instances.
	SellerUoWFactory interface {
		Create() SellerUoW
	}

	// PartnerUoW manages transactions for partner account operations.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// AccountUoW manages transactions that may touch either account kind,
	// such as email verification driven by token claims.
	AccountUoW interface {
		TxManager
		SellerRepoFactory
		PartnerRepoFactory
	}

	// AccountUoWFactory creates new account unit of work instances.
	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// UoW manages transactions across shipment and account aggregates.
	// Used by shipment submission, which reads the seller, locks partner
	// candidates, and persists the assigned shipment atomically.
	UoW interface {
		TxManager
		ShipmentRepoFactory
		PartnerRepoFactory
		SellerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
