package http

import (
	"errors"
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps the error families onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrVerificationFailed):
		return http.StatusUnprocessableEntity
	case errs.IsConflict(err):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		msg = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}
