package http

import (
	"net/http"
	"strings"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// claimsContextKey is the echo context key holding verified token claims.
const claimsContextKey = "auth.claims"

// requireAuth verifies the bearer access token and stores its claims in the
// request context. Requests without a valid token are rejected with 401.
func requireAuth(tokens ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			claims, err := tokens.Verify(token, ports.PurposeAccess)
			if err != nil {
				return respondError(ctx, err)
			}

			ctx.Set(claimsContextKey, claims)
			return next(ctx)
		}
	}
}

// authClaims returns the verified claims stored by requireAuth.
func authClaims(ctx echo.Context) (ports.TokenClaims, bool) {
	claims, ok := ctx.Get(claimsContextKey).(ports.TokenClaims)
	return claims, ok
}

// actingSeller returns the authenticated seller's ID, or false when the
// request is not authenticated as a seller.
func actingSeller(ctx echo.Context) (kernel.UUID, bool) {
	claims, ok := authClaims(ctx)
	if !ok || claims.Role != account.RoleSeller {
		return kernel.UUID{}, false
	}
	return claims.SubjectID, true
}

// actingPartner returns the authenticated partner's ID, or false when the
// request is not authenticated as a delivery partner.
func actingPartner(ctx echo.Context) (kernel.UUID, bool) {
	claims, ok := authClaims(ctx)
	if !ok || claims.Role != account.RolePartner {
		return kernel.UUID{}, false
	}
	return claims.SubjectID, true
}

// respondWrongRole rejects a request authenticated with the wrong account
// kind for the endpoint.
func respondWrongRole(ctx echo.Context, required account.Role) error {
	return ctx.JSON(http.StatusForbidden, errorResponse{
		Code:    http.StatusForbidden,
		Message: "endpoint requires a " + required.String() + " account",
	})
}
