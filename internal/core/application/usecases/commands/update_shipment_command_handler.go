package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// ErrVerificationCodeMismatch is returned when the code presented to record
// delivery does not match the one sent to the customer, or no code exists.
var ErrVerificationCodeMismatch = errors.New("verification code does not match")

// reviewTokenTTL bounds how long the review link in the delivery
// notification stays valid.
const reviewTokenTTL = 7 * 24 * time.Hour

// UpdateShipmentCommandHandler handles partner progress updates.
//
// Side effects by status:
//   - OutForDelivery mints a six digit verification code, stores it, and
//     sends it to the customer by email and SMS
//   - Delivered requires the stored code to match, spends it, and sends the
//     customer a signed review link
//   - InTransit is silent
type UpdateShipmentCommandHandler struct {
	uowFactory    ShipmentUoWFactory
	codes         ports.VerificationCodeStore
	tokens        ports.TokenCodec
	notifier      ports.Notifier
	logger        *slog.Logger
	publicBaseURL string
}

// NewUpdateShipmentCommandHandler creates a handler for shipment progress updates.
func NewUpdateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	codes ports.VerificationCodeStore,
	tokens ports.TokenCodec,
	notifier ports.Notifier,
	logger *slog.Logger,
	publicBaseURL string,
) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory:    uowFactory,
		codes:         codes,
		tokens:        tokens,
		notifier:      notifier,
		logger:        logger,
		publicBaseURL: publicBaseURL,
	}
}

// Handle processes the shipment update command.
// Fails with a not-authorized error when the acting partner is not the
// shipment's assigned partner, and with ErrVerificationCodeMismatch when a
// delivery is recorded with a wrong or missing code.
func (h UpdateShipmentCommandHandler) Handle(ctx context.Context, command UpdateShipmentCommand) error {
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

	if !trackedShipment.IsAssignedTo(command.PartnerID()) {
		return errs.NewNotAuthorizedError(
			command.PartnerID().String(), command.ShipmentID().String(),
		)
	}

	if command.EstimatedDelivery() != nil {
		if err = trackedShipment.SetEstimatedDelivery(*command.EstimatedDelivery()); err != nil {
			return err
		}
	}

	var verificationCode string
	if command.appendsEvent() {
		if isDelivery(command.Status()) {
			if err = h.checkVerificationCode(ctx, command); err != nil {
				return err
			}
		}

		if _, err = trackedShipment.AppendEvent(
			kernel.NewUUID(),
			time.Now().UTC(),
			command.Location(),
			command.Status(),
			command.Description(),
		); err != nil {
			return err
		}

		// The code lives outside the transaction, so mint before commit:
		// a storage failure aborts the whole update instead of leaving an
		// out-for-delivery shipment without a code.
		if isOutForDelivery(command.Status()) {
			verificationCode = mintVerificationCode()
			if err = h.codes.Put(ctx, trackedShipment.ID(), verificationCode); err != nil {
				return err
			}
		}
		if isDelivery(command.Status()) {
			if err = h.codes.Delete(ctx, trackedShipment.ID()); err != nil {
				return err
			}
		}
	}

	if err = shipmentRepo.Update(ctx, trackedShipment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyAfterCommit(ctx, command, trackedShipment, verificationCode)
	return nil
}

func (h UpdateShipmentCommandHandler) checkVerificationCode(
	ctx context.Context, command UpdateShipmentCommand,
) error {
	stored, err := h.codes.Get(ctx, command.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrVerificationCodeMismatch
	}
	if err != nil {
		return err
	}

	if command.VerificationCode() == nil || *command.VerificationCode() != stored {
		return ErrVerificationCodeMismatch
	}
	return nil
}

func (h UpdateShipmentCommandHandler) notifyAfterCommit(
	ctx context.Context,
	command UpdateShipmentCommand,
	trackedShipment *shipment.Shipment,
	verificationCode string,
) {
	switch {
	case isOutForDelivery(command.Status()):
		notifications := []ports.Notification{
			shipmentOutForDeliveryEmail(trackedShipment.CustomerEmail(), verificationCode),
		}
		if phone := trackedShipment.CustomerPhone(); phone != nil {
			notifications = append(notifications,
				shipmentOutForDeliverySMS(*phone, verificationCode),
			)
		}
		dispatchNotifications(ctx, h.logger, h.notifier, notifications...)

	case isDelivery(command.Status()):
		reviewToken, err := h.tokens.Issue(ports.TokenClaims{
			SubjectID: trackedShipment.ID(),
			Purpose:   ports.PurposeReview,
		}, reviewTokenTTL)
		if err != nil {
			h.logger.WarnContext(ctx, "review token issue failed",
				"shipment_id", trackedShipment.ID(), "error", err)
			return
		}

		reviewLink := fmt.Sprintf("%s/api/reviews?token=%s", h.publicBaseURL, reviewToken)
		dispatchNotifications(ctx, h.logger, h.notifier,
			shipmentDeliveredNotification(trackedShipment.CustomerEmail(), reviewLink),
		)
	}
}

// mintVerificationCode draws a random six digit code.
func mintVerificationCode() string {
	return fmt.Sprintf("%d", 100_000+rand.IntN(900_000))
}

func isOutForDelivery(status *shipment.Status) bool {
	return status != nil && *status == shipment.OutForDelivery
}

func isDelivery(status *shipment.Status) bool {
	return status != nil && *status == shipment.Delivered
}
