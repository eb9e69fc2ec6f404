package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// ErrShipmentAlreadyDelivered is returned when cancelling a shipment whose
// latest event is Delivered.
var ErrShipmentAlreadyDelivered = errors.New("shipment has already been delivered")

// CancelShipmentCommandHandler handles seller-initiated cancellation.
//
// Cancelling an already cancelled shipment appends another Cancelled event
// and succeeds; the derived status does not change, so the operation is
// effectively idempotent. A delivered shipment cannot be cancelled.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	codes      ports.VerificationCodeStore
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	codes ports.VerificationCodeStore,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
// Fails with a not-authorized error when the acting seller does not own the
// shipment.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, command CancelShipmentCommand) error {
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

	if trackedShipment.Status() == shipment.Delivered {
		return ErrShipmentAlreadyDelivered
	}

	cancelled := shipment.Cancelled
	if _, err = trackedShipment.AppendEvent(
		kernel.NewUUID(), time.Now().UTC(), nil, &cancelled, command.Reason(),
	); err != nil {
		return err
	}

	// Any outstanding delivery code is dead once the shipment is cancelled.
	if err = h.codes.Delete(ctx, trackedShipment.ID()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	dispatchNotifications(ctx, h.logger, h.notifier,
		shipmentCancelledNotification(trackedShipment.CustomerEmail()),
	)
	return nil
}
