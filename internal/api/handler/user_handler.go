package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Update changes the name and/or grade of a user.
//
// @Summary      Update user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user_id  query     int                true  "User ID"
// @Param        body     body      updateUserRequest  true  "Fields to change"
// @Success      202      {object}  domain.User
// @Failure      401      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /auth/update-user [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var userID int64
	if err := echo.QueryParamsBinder(c).MustInt64("user_id", &userID).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "user_id must be an integer")
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Request().Context(), userID, toUserPatch(req))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		return err
	}
	return c.JSON(http.StatusAccepted, user)
}

// List returns every registered user.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Success      200  {array}  domain.User
// @Success      204
// @Router       /auth/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, users)
}
