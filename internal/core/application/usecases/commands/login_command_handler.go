package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	// Deliberately indistinguishable between the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified is returned when an unverified account tries to log in.
	ErrEmailNotVerified = errors.New("email is not verified")
)

// accessTokenTTL bounds how long an issued access token stays valid.
const accessTokenTTL = 24 * time.Hour

// LoginCommandHandler authenticates accounts and issues access tokens.
type LoginCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenCodec
}

// NewLoginCommandHandler creates a handler for login.
func NewLoginCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
	}
}

// Handle processes the login command and returns a signed access token.
// Fails with ErrInvalidCredentials on a wrong email or password and with
// ErrEmailNotVerified for unverified accounts.
func (h LoginCommandHandler) Handle(ctx context.Context, command LoginCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	credentials, subjectID, verified, err := h.lookupAccount(ctx, uow, command)
	if err != nil {
		return "", err
	}

	if !h.hasher.Compare(credentials.PasswordHash(), command.Password()) {
		return "", ErrInvalidCredentials
	}
	if !verified {
		return "", ErrEmailNotVerified
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return h.tokens.Issue(ports.TokenClaims{
		SubjectID: subjectID,
		Role:      command.Role(),
		Purpose:   ports.PurposeAccess,
	}, accessTokenTTL)
}

func (h LoginCommandHandler) lookupAccount(
	ctx context.Context, uow AccountUoW, command LoginCommand,
) (account.Credentials, kernel.UUID, bool, error) {
	switch command.Role() {
	case account.RolePartner:
		partner, err := uow.PartnerRepository().GetByEmail(ctx, command.Email())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return account.Credentials{}, kernel.UUID{}, false, ErrInvalidCredentials
		}
		if err != nil {
			return account.Credentials{}, kernel.UUID{}, false, err
		}
		return partner.Credentials(), partner.ID(), partner.EmailVerified(), nil

	default:
		seller, err := uow.SellerRepository().GetByEmail(ctx, command.Email())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return account.Credentials{}, kernel.UUID{}, false, ErrInvalidCredentials
		}
		if err != nil {
			return account.Credentials{}, kernel.UUID{}, false, err
		}
		return seller.Credentials(), seller.ID(), seller.EmailVerified(), nil
	}
}
