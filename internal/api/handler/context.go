package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatterly/chat-service/internal/api/middleware"
	"github.com/chatterly/chat-service/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware.
// Its presence proves the middleware ran and accepted the token.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(*domain.Identity)
	if !ok || identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// ctxToken extracts the raw session token for operations that act on the
// session itself (logout).
func ctxToken(c echo.Context) (string, error) {
	token, ok := c.Get(middleware.TokenKey).(string)
	if !ok || token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}
	return token, nil
}
