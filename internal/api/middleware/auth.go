package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskman/taskman-api/internal/api/handler"
	"github.com/taskman/taskman-api/internal/core/ports"
)

// Auth resolves the bearer token to a user and injects it into the context
// under handler.ContextUserKey.
func Auth(resolver ports.CurrentUserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Response().Header().Del(echo.HeaderWWWAuthenticate)
			c.Set(handler.ContextUserKey, user)
			return next(c)
		}
	}
}
