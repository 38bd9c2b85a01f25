package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pizzadelivery/pizza-api/internal/api/handler"
	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:         http.StatusBadRequest,
	domain.KindConflict:           http.StatusBadRequest,
	domain.KindInvalidCredentials: http.StatusBadRequest,
	domain.KindUnauthorized:       http.StatusUnauthorized,
	domain.KindNotFound:           http.StatusNotFound,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Passes echo's own errors (routing, rate limiting) through with their code.
//   - Logs unexpected errors internally without leaking details to the client.
//
// Every response uses the envelope {"kind": "<kind>", "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Kind: httpKind(he.Code), Error: fmt.Sprintf("%v", he.Message)}
	}

	var de *domain.Error
	if errors.As(err, &de) {
		if code, ok := kindStatus[de.Kind]; ok {
			msg := de.Msg
			// Validation errors carry the offending field in the wrapping text.
			if de.Kind == domain.KindValidation {
				msg = err.Error()
			}
			return code, handler.ErrorResponse{Kind: de.Kind, Error: msg}
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Kind: domain.KindInternal, Error: "internal server error"}
}

func httpKind(code int) domain.Kind {
	switch code {
	case http.StatusBadRequest:
		return domain.KindValidation
	case http.StatusUnauthorized:
		return domain.KindUnauthorized
	case http.StatusNotFound:
		return domain.KindNotFound
	default:
		if code >= http.StatusInternalServerError {
			return domain.KindInternal
		}
		// e.g. "too_many_requests", "method_not_allowed"
		return domain.Kind(strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_"))
	}
}
