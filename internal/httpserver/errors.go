package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelasq/moviefavs/internal/apperr"
)

// NewHTTPErrorHandler is the single place where error kinds become status
// codes. Anything outside the taxonomy is logged in full and returned as a
// generic 500 without leaking internals.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "an unexpected error occurred"

		switch {
		case errors.Is(err, apperr.ErrValidation):
			status, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, apperr.ErrEmailTaken):
			status, msg = http.StatusBadRequest, "email already registered"
		case errors.Is(err, apperr.ErrInvalidCredentials):
			status, msg = http.StatusUnauthorized, "invalid credentials"
		case errors.Is(err, apperr.ErrInvalidToken):
			status, msg = http.StatusBadRequest, "invalid token"
		case errors.Is(err, apperr.ErrUnauthenticated):
			status, msg = http.StatusUnauthorized, "unauthorized"
		case errors.Is(err, apperr.ErrNotFound):
			status, msg = http.StatusNotFound, err.Error()
		default:
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
				if s, ok := he.Message.(string); ok {
					msg = s
				} else {
					msg = http.StatusText(status)
				}
			} else {
				log.Error("unexpected error", "error", err, "method", c.Request().Method, "path", c.Path())
			}
		}

		if werr := respondError(c, status, msg); werr != nil {
			log.Error("error response write failed", "error", werr)
		}
	}
}
