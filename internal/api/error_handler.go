package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes, passing the
//     message through verbatim.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Domain errors carry a machine-checkable kind; the message is the
	// contract and passes through untouched.
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindBadRequest:
			return http.StatusBadRequest, de.Message
		case domain.KindUnauthorized:
			return http.StatusUnauthorized, de.Message
		case domain.KindForbidden:
			return http.StatusForbidden, de.Message
		case domain.KindNotFound:
			return http.StatusNotFound, de.Message
		case domain.KindConflict:
			return http.StatusConflict, de.Message
		case domain.KindInvalid:
			return http.StatusUnprocessableEntity, de.Message
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error"
}
