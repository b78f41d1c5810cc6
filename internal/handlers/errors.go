package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler wraps echo's default handler with error logging and counting.
// Responses that were already written are left alone.
func NewHTTPErrorHandler(e *echo.Echo, m *metrics.Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		if code >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}
		m.Errors.WithLabelValues(strconv.Itoa(code)).Inc()

		e.DefaultHTTPErrorHandler(err, c)
	}
}
