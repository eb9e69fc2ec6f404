package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// ErrEmailAlreadyRegistered is returned when registering with an email that
// an account of the same kind already uses.
var ErrEmailAlreadyRegistered = errors.New("email is already registered")

// verificationTokenTTL bounds how long the emailed verification link stays valid.
const verificationTokenTTL = 24 * time.Hour

// RegisterSellerCommandHandler handles seller registration.
// The account is created unverified; the verification link goes out by email
// after the transaction commits.
type RegisterSellerCommandHandler struct {
	uowFactory    SellerUoWFactory
	hasher        ports.PasswordHasher
	tokens        ports.TokenCodec
	notifier      ports.Notifier
	logger        *slog.Logger
	publicBaseURL string
}

// NewRegisterSellerCommandHandler creates a handler for seller registration.
func NewRegisterSellerCommandHandler(
	uowFactory SellerUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	notifier ports.Notifier,
	logger *slog.Logger,
	publicBaseURL string,
) RegisterSellerCommandHandler {
	return RegisterSellerCommandHandler{
		uowFactory:    uowFactory,
		hasher:        hasher,
		tokens:        tokens,
		notifier:      notifier,
		logger:        logger,
		publicBaseURL: publicBaseURL,
	}
}

// Handle processes the seller registration command.
// Fails with ErrEmailAlreadyRegistered when the email is taken.
func (h RegisterSellerCommandHandler) Handle(ctx context.Context, command RegisterSellerCommand) error {
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

	seller, err := account.NewSeller(command.SellerID(), command.Name(), command.Zipcode(), credentials)
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

	sellerRepo := uow.SellerRepository()
	if _, err = sellerRepo.GetByEmail(ctx, credentials.Email()); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = sellerRepo.Add(ctx, seller); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.sendVerificationLink(ctx, seller)
	return nil
}

func (h RegisterSellerCommandHandler) sendVerificationLink(ctx context.Context, seller *account.Seller) {
	token, err := h.tokens.Issue(ports.TokenClaims{
		SubjectID: seller.ID(),
		Role:      account.RoleSeller,
		Purpose:   ports.PurposeEmailVerification,
	}, verificationTokenTTL)
	if err != nil {
		h.logger.WarnContext(ctx, "verification token issue failed",
			"seller_id", seller.ID(), "error", err)
		return
	}

	verifyLink := fmt.Sprintf("%s/api/accounts/verify?token=%s", h.publicBaseURL, token)
	dispatchNotifications(ctx, h.logger, h.notifier,
		accountVerificationNotification(seller.Credentials().Email(), verifyLink),
	)
}
