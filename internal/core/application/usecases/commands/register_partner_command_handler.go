package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// RegisterPartnerCommandHandler handles delivery partner registration.
// The account is created unverified; the verification link goes out by email
// after the transaction commits.
type RegisterPartnerCommandHandler struct {
	uowFactory    PartnerUoWFactory
	hasher        ports.PasswordHasher
	tokens        ports.TokenCodec
	notifier      ports.Notifier
	logger        *slog.Logger
	publicBaseURL string
}

// NewRegisterPartnerCommandHandler creates a handler for partner registration.
func NewRegisterPartnerCommandHandler(
	uowFactory PartnerUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	notifier ports.Notifier,
	logger *slog.Logger,
	publicBaseURL string,
) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory:    uowFactory,
		hasher:        hasher,
		tokens:        tokens,
		notifier:      notifier,
		logger:        logger,
		publicBaseURL: publicBaseURL,
	}
}

// Handle processes the partner registration command.
// Fails with ErrEmailAlreadyRegistered when the email is taken.
func (h RegisterPartnerCommandHandler) Handle(ctx context.Context, command RegisterPartnerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	passwordHash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return err
	}

	credentials, err := account.NewCredentials(command.Email(), passwordHash)
	if err != nil {
		return err
	}

	partner, err := account.NewDeliveryPartner(
		command.PartnerID(),
		command.Name(),
		credentials,
		command.ServiceableZipcodes(),
		command.MaxCapacity(),
	)
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

	partnerRepo := uow.PartnerRepository()
	if _, err = partnerRepo.GetByEmail(ctx, credentials.Email()); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = partnerRepo.Add(ctx, partner); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.sendVerificationLink(ctx, partner)
	return nil
}

func (h RegisterPartnerCommandHandler) sendVerificationLink(
	ctx context.Context, partner *account.DeliveryPartner,
) {
	token, err := h.tokens.Issue(ports.TokenClaims{
		SubjectID: partner.ID(),
		Role:      account.RolePartner,
		Purpose:   ports.PurposeEmailVerification,
	}, verificationTokenTTL)
	if err != nil {
		h.logger.WarnContext(ctx, "verification token issue failed",
			"partner_id", partner.ID(), "error", err)
		return
	}

	verifyLink := fmt.Sprintf("%s/api/accounts/verify?token=%s", h.publicBaseURL, token)
	dispatchNotifications(ctx, h.logger, h.notifier,
		accountVerificationNotification(partner.Credentials().Email(), verifyLink),
	)
}
