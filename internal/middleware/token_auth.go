package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/recipe-hub/backend/internal/auth"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const (
	userContextKey  = "user"
	tokenContextKey = "token"
)

// TokenAuthMiddleware requires a signed token that is still stored for its user.
// Accepts "Bearer <key>" and "Token <key>".
func TokenAuthMiddleware(issuer *auth.TokenIssuer, tokens repositories.TokenRepository, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			if scheme := strings.ToLower(parts[0]); scheme != "bearer" && scheme != "token" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			key := parts[1]

			claims, err := issuer.Parse(key)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			ctx := c.Request().Context()
			stored, err := tokens.GetByKey(ctx, key)
			if err != nil {
				if repositories.IsNotFound(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
				return err
			}
			if stored.UserID != claims.UserID {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := users.GetUserByID(ctx, stored.UserID)
			if err != nil {
				if repositories.IsNotFound(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				return err
			}

			c.Set(userContextKey, user)
			c.Set(tokenContextKey, stored)
			return next(c)
		}
	}
}

// CurrentUser returns the user set by TokenAuthMiddleware, or nil
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// CurrentToken returns the token that authenticated the request, or nil
func CurrentToken(c echo.Context) *models.AuthToken {
	token, _ := c.Get(tokenContextKey).(*models.AuthToken)
	return token
}
