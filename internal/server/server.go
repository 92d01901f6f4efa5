package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"InsightDesk/internal/branding"
	"InsightDesk/internal/config"
	"InsightDesk/internal/forecast"
	"InsightDesk/internal/metrics"
	"InsightDesk/internal/sentiment"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server serves both dashboards and their CSV/JSON endpoints.
type Server struct {
	echo   *echo.Echo
	config *config.Config
	theme  branding.Theme

	labeler   *sentiment.Labeler
	topics    *sentiment.TopicTagger
	forecasts *forecast.Service

	metrics  *metrics.Metrics
	registry *prometheus.Registry

	templates *template.Template
	startTime time.Time
}

// NewServer wires handlers and middleware. The theme is fixed for the
// lifetime of the server.
func NewServer(cfg *config.Config, theme branding.Theme, forecasts *forecast.Service, reg *prometheus.Registry, m *metrics.Metrics) (*Server, error) {
	templates, err := template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		config:    cfg,
		theme:     theme,
		labeler:   sentiment.DefaultLabeler(),
		topics:    sentiment.DefaultTopicTagger(),
		forecasts: forecasts,
		metrics:   m,
		registry:  reg,
		templates: templates,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.config.Server.Addr)
	if err := s.echo.Start(s.config.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) renderTemplate(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execution failed", "path", c.Request().URL.Path, "error", err)
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(status, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}

// page carries what every template needs.
type page struct {
	Theme  branding.Theme
	Banner branding.Banner
	Intro  template.HTML
}

func (s *Server) newPage(b branding.Banner, intro string) page {
	p := page{Theme: s.theme, Banner: b}
	if intro != "" {
		p.Intro = branding.Markdown(intro)
	}
	return p
}
