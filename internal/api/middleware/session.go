package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chatterly/chat-service/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token for
// browser clients. API clients may send the same token as a bearer header.
const SessionCookie = "chatterly_session"

// Context keys set by the Session middleware.
const (
	IdentityKey = "identity"
	TokenKey    = "session_token"
)

// Session validates the session token and injects the bound identity into
// context. Requests without a valid, unrevoked token are rejected with 401.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			identity, err := sessions.Validate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(IdentityKey, identity)
			c.Set(TokenKey, token)

			return next(c)
		}
	}
}

// extractToken prefers the session cookie and falls back to a bearer header.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
