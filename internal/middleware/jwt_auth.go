package middleware

import (
	"strings"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// userIDKey is the echo context key holding the authenticated user id
const userIDKey = "userID"

// JWTAuthMiddleware checks for a valid bearer token and stores its user id in the context.
func JWTAuthMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperrors.Auth("Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperrors.Auth("Invalid Authorization header format")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return apperrors.Auth("Invalid token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id stored by JWTAuthMiddleware
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok && id != 0
}
