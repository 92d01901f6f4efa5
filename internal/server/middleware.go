package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"InsightDesk/internal/apperrors"
)

// ErrorHandlingMiddleware turns handler errors into JSON responses. Echo's own
// HTTP errors (404, 429 from the rate limiter) pass through to the default
// handler; the body limit is reported like any other upload error.
func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) && !errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
				return err
			}

			appErr := apperrors.From(err)
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			attrs := []any{
				"type", appErr.Type,
				"message", appErr.Message,
				"path", c.Request().URL.Path,
				"request_id", requestID,
			}
			if appErr.Cause != nil {
				attrs = append(attrs, "cause", appErr.Cause)
			}
			if appErr.Type == apperrors.TypeInternal {
				slog.Error("request failed", attrs...)
			} else {
				slog.Warn("request rejected", attrs...)
			}

			if c.Response().Committed {
				return nil
			}
			return c.JSON(appErr.HTTPStatus(), appErr.ToResponse())
		}
	}
}

// metricsMiddleware records latency per route template.
func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if err != nil && errors.As(err, &httpErr) {
				status = httpErr.Code
			} else if err != nil && !c.Response().Committed {
				status = http.StatusInternalServerError
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			s.metrics.RequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
