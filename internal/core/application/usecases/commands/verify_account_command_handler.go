package commands

import (
	"context"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/ports"
)

// VerifyAccountCommandHandler completes registration for either account kind.
// The token's role claim decides which repository the account lives in.
type VerifyAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	tokens     ports.TokenCodec
}

// NewVerifyAccountCommandHandler creates a handler for email verification.
func NewVerifyAccountCommandHandler(
	uowFactory AccountUoWFactory,
	tokens ports.TokenCodec,
) VerifyAccountCommandHandler {
	return VerifyAccountCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
	}
}

// Handle processes the verification command.
// Fails with ports.ErrTokenInvalid for bad tokens and with
// account.ErrEmailAlreadyVerified when the link was already spent.
func (h VerifyAccountCommandHandler) Handle(ctx context.Context, command VerifyAccountCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	claims, err := h.tokens.Verify(command.Token(), ports.PurposeEmailVerification)
	if err != nil {
		return err
	}
	if err = claims.Role.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	switch claims.Role {
	case account.RoleSeller:
		sellerRepo := uow.SellerRepository()
		seller, getErr := sellerRepo.Get(ctx, claims.SubjectID)
		if getErr != nil {
			return getErr
		}
		if err = seller.VerifyEmail(); err != nil {
			return err
		}
		if err = sellerRepo.Update(ctx, seller); err != nil {
			return err
		}

	case account.RolePartner:
		partnerRepo := uow.PartnerRepository()
		partner, getErr := partnerRepo.Get(ctx, claims.SubjectID)
		if getErr != nil {
			return getErr
		}
		if err = partner.VerifyEmail(); err != nil {
			return err
		}
		if err = partnerRepo.Update(ctx, partner); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
