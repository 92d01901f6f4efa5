package server

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"InsightDesk/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.metricsMiddleware())
	s.echo.Use(ErrorHandlingMiddleware())
	s.echo.Use(middleware.BodyLimit(s.config.Server.UploadLimit))

	uploads := s.uploadRateLimiter()

	s.echo.GET("/", s.handleLanding)

	s.echo.GET("/sentiment", s.handleSentimentPage)
	s.echo.POST("/sentiment", s.handleSentimentUpload, uploads)
	s.echo.POST("/api/sentiment/label", s.handleLabelAPI, uploads)

	s.echo.GET("/forecast", s.handleForecastPage)
	s.echo.POST("/forecast", s.handleForecastPage, uploads)
	s.echo.GET("/api/forecast/scenarios", s.handleScenariosJSON)
	s.echo.GET("/api/forecast/scenarios.csv", s.handleScenariosCSV)

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("request", attrs...)
			return nil
		},
	})
}

// uploadRateLimiter throttles per client IP. A negative rate disables it.
func (s *Server) uploadRateLimiter() echo.MiddlewareFunc {
	limit := s.config.Server.RateLimit
	if limit < 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(limit),
		Burst: int(math.Max(1, math.Ceil(limit))),
	})
	return middleware.RateLimiter(store)
}
