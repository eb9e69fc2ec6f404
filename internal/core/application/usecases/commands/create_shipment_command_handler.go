package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// CreateShipmentCommandHandler handles shipment submission.
//
// Submission is atomic: the seller is loaded, partner candidates for the
// destination are locked and searched first-fit, the shipment is created with
// its first Placed event, and everything commits together. Two concurrent
// submissions cannot both take the last free slot of the same partner because
// the candidate rows stay locked until commit.
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateShipmentCommandHandler creates a handler for shipment submission.
func NewCreateShipmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the shipment submission command.
// Fails with services.ErrNoPartnerAvailable when no partner serves the
// destination with free capacity; nothing is persisted in that case.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, command CreateShipmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	seller, err := uow.SellerRepository().Get(ctx, command.SellerID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newShipment, err := shipment.NewShipment(
		command.ShipmentID(),
		command.Content(),
		command.Weight(),
		command.Destination(),
		command.CustomerEmail(),
		command.CustomerPhone(),
		seller.ID(),
		now,
	)
	if err != nil {
		return err
	}

	candidates, err := uow.PartnerRepository().GetCandidatesForDestination(ctx, command.Destination())
	if err != nil {
		return err
	}

	partner, err := services.NewPartnerDispatcher().Dispatch(newShipment, candidates)
	if err != nil {
		return err
	}

	// The first event originates at the seller's own postal area.
	origin := seller.Zipcode()
	placed := shipment.Placed
	if _, err = newShipment.AppendEvent(
		kernel.NewUUID(), now, &origin, &placed,
		fmt.Sprintf("Shipment assigned to %s", partner.Name()),
	); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	dispatchNotifications(ctx, h.logger, h.notifier,
		shipmentPlacedNotification(command.CustomerEmail(), newShipment.ID(), command.Content()),
	)
	return nil
}
