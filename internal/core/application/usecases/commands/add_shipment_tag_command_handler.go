package commands

import (
	"context"

	"shipping/internal/pkg/errs"
)

// AddShipmentTagCommandHandler handles attaching handling tags to shipments.
type AddShipmentTagCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewAddShipmentTagCommandHandler creates a handler for tag attachment.
func NewAddShipmentTagCommandHandler(uowFactory ShipmentUoWFactory) AddShipmentTagCommandHandler {
	return AddShipmentTagCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tag attachment command.
// Fails with a not-authorized error when the acting seller does not own the
// shipment.
func (h AddShipmentTagCommandHandler) Handle(ctx context.Context, command AddShipmentTagCommand) error {
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

	if err = trackedShipment.AddTag(command.Tag()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
