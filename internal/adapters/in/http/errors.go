package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON error body returned by every endpoint.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps application and domain errors to HTTP statuses. The
// response carries the error text for client-facing failures and a generic
// message for anything unexpected.
func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrTokenInvalid),
		errors.Is(err, commands.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, errs.ErrNotAuthorized),
		errors.Is(err, commands.ErrEmailNotVerified),
		errors.Is(err, commands.ErrVerificationCodeMismatch):
		return http.StatusForbidden

	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, commands.ErrEmailAlreadyRegistered),
		errors.Is(err, commands.ErrShipmentAlreadyDelivered),
		errors.Is(err, commands.ErrShipmentIsNotDelivered),
		errors.Is(err, shipment.ErrReviewAlreadyAttached),
		errors.Is(err, shipment.ErrPartnerAlreadyAssigned),
		errors.Is(err, account.ErrEmailAlreadyVerified):
		return http.StatusConflict

	case errors.Is(err, services.ErrNoPartnerAvailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrNothingToUpdate),
		errors.Is(err, commands.ErrCancelledStatusIsSellerAction):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
