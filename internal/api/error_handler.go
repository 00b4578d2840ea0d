package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to status codes and renders {"error": "<message>"}. Unexpected errors are
// logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if code, ok := statusFor(err); ok {
		return code, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// statusFor maps a domain error to its HTTP status. Specific errors are
// matched before their categories.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrAssigneeNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrInsufficientGrade):
		return http.StatusExpectationFailed, true
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusUnprocessableEntity, true
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrPolicyViolation):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, true
	}
	return 0, false
}
