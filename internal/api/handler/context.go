package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// ContextUserKey is where the Auth middleware stores the resolved user.
const ContextUserKey = "user"

// currentUser returns the user injected by the Auth middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}

// bindAndValidate decodes the request into req and runs struct validation.
// Malformed payloads are 400, semantically invalid ones 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
