package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"InsightDesk/internal/branding"
)

type landingView struct {
	page
	Sentiment branding.Banner
	Forecast  branding.Banner
}

func (s *Server) handleLanding(c echo.Context) error {
	view := landingView{
		page:      s.newPage(branding.Banner{Title: "InsightDesk", Subtitle: "Customer and commercial insight dashboards.", Emoji: "🧭"}, ""),
		Sentiment: branding.SentimentBanner,
		Forecast:  branding.ForecastBanner,
	}
	return s.renderTemplate(c, http.StatusOK, "landing.html", view)
}
