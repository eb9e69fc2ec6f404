package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// ErrShipmentIsNotDelivered is returned when a review is submitted for a
// shipment whose latest event is not Delivered.
var ErrShipmentIsNotDelivered = errors.New("shipment has not been delivered")

// SubmitReviewCommandHandler handles review submission through signed links.
//
// The review token is single purpose and names one shipment; a second
// submission for the same shipment fails because the aggregate holds at most
// one review, so a leaked link cannot be replayed to overwrite the rating.
type SubmitReviewCommandHandler struct {
	uowFactory ShipmentUoWFactory
	tokens     ports.TokenCodec
}

// NewSubmitReviewCommandHandler creates a handler for review submission.
func NewSubmitReviewCommandHandler(
	uowFactory ShipmentUoWFactory,
	tokens ports.TokenCodec,
) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
	}
}

// Handle processes the review submission command.
// Fails with ports.ErrTokenInvalid for bad tokens, ErrShipmentIsNotDelivered
// for undelivered shipments, and shipment.ErrReviewAlreadyAttached when a
// review already exists.
func (h SubmitReviewCommandHandler) Handle(ctx context.Context, command SubmitReviewCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	claims, err := h.tokens.Verify(command.Token(), ports.PurposeReview)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	trackedShipment, err := shipmentRepo.Get(ctx, claims.SubjectID)
	if err != nil {
		return err
	}

	if trackedShipment.Status() != shipment.Delivered {
		return ErrShipmentIsNotDelivered
	}

	review, err := shipment.NewReview(
		kernel.NewUUID(), time.Now().UTC(), command.Rating(), command.Comment(),
	)
	if err != nil {
		return err
	}

	if err = trackedShipment.AttachReview(review); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
