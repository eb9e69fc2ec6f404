package commands

import (
	"context"

	"shipping/internal/pkg/errs"
)

// RemoveShipmentTagCommandHandler handles detaching handling tags from shipments.
type RemoveShipmentTagCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewRemoveShipmentTagCommandHandler creates a handler for tag removal.
func NewRemoveShipmentTagCommandHandler(uowFactory ShipmentUoWFactory) RemoveShipmentTagCommandHandler {
	return RemoveShipmentTagCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tag removal command.
// Fails with a not-authorized error when the acting seller does not own the
// shipment, and with an object-not-found error when the tag is not attached.
func (h RemoveShipmentTagCommandHandler) Handle(ctx context.Context, command RemoveShipmentTagCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	trackedShipment, err := shipmentRepo.Get(ctx, command.ShipmentID())
	if err != nil {
		return err
	}

	if !trackedShipment.IsOwnedBy(command.SellerID()) {
		return errs.NewNotAuthorizedError(
			command.SellerID().String(), command.ShipmentID().String(),
		)
	}

	if err = trackedShipment.RemoveTag(command.Tag()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
