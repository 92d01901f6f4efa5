package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"InsightDesk/internal/apperrors"
	"InsightDesk/internal/branding"
	"InsightDesk/internal/forecast"
	"InsightDesk/internal/model"
	"InsightDesk/internal/tabular"
)

const (
	scenariosFileName = "promo_scenarios.csv"
	transactionsField = "transactions"
)

type forecastView struct {
	page
	Tip          template.HTML
	Assumptions  model.ScenarioAssumptions
	Columns      []string
	Rows         [][]string
	Summary      model.ScenarioSummary
	Chart        []scenarioBar
	HasTable     bool
	Negative     bool
	DownloadHref string
	Transactions *model.TransactionsSummary
	Warning      string
	Error        string
	ErrorField   string
}

// scenarioBar is one discount step of the revenue and contribution chart.
// Widths are percentages of the largest absolute value in each series.
type scenarioBar struct {
	Discount          float64
	Revenue           float64
	RevenueWidth      float64
	Contribution      float64
	ContributionWidth float64
}

type scenariosResponse struct {
	Assumptions model.ScenarioAssumptions `json:"assumptions"`
	Rows        []model.ScenarioRow       `json:"rows"`
	Summary     model.ScenarioSummary     `json:"summary"`
}

func (s *Server) handleForecastPage(c echo.Context) error {
	view := forecastView{
		page:    s.newPage(branding.ForecastBanner, branding.ForecastIntro),
		Tip:     branding.Markdown(branding.ForecastTip),
		Columns: tabular.ScenarioColumns,
	}

	a, err := s.bindAssumptions(c)
	view.Assumptions = a
	if err == nil {
		var table model.ScenarioTable
		table, view.Summary, err = s.buildForecast(a)
		if err == nil {
			view.HasTable = true
			for _, r := range table.Rows {
				view.Rows = append(view.Rows, tabular.ScenarioRecord(r))
				view.Negative = view.Negative || r.ContributionMargin < 0
			}
			view.Chart = chartBars(table)
			view.DownloadHref = "/api/forecast/scenarios.csv?" + assumptionQuery(a).Encode()
		}
	}
	if err != nil {
		appErr := apperrors.From(err)
		view.Error = appErr.Message
		if f, ok := appErr.Context["field"].(string); ok {
			view.ErrorField = f
		}
		return s.renderTemplate(c, appErr.HTTPStatus(), "forecast.html", view)
	}

	if c.Request().Method == http.MethodPost {
		view.Transactions, view.Warning = s.readTransactions(c)
	}
	return s.renderTemplate(c, http.StatusOK, "forecast.html", view)
}

func (s *Server) handleScenariosJSON(c echo.Context) error {
	a, err := s.bindAssumptions(c)
	if err != nil {
		return err
	}
	table, summary, err := s.buildForecast(a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scenariosResponse{Assumptions: a, Rows: table.Rows, Summary: summary})
}

func (s *Server) handleScenariosCSV(c echo.Context) error {
	a, err := s.bindAssumptions(c)
	if err != nil {
		return err
	}
	table, _, err := s.buildForecast(a)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tabular.WriteScenarios(&buf, table); err != nil {
		return apperrors.Internal("failed to write scenario csv", err)
	}
	return csvAttachment(c, scenariosFileName, buf.Bytes())
}

// bindAssumptions overlays query/form values onto the configured defaults.
// Absent parameters keep their default.
func (s *Server) bindAssumptions(c echo.Context) (model.ScenarioAssumptions, error) {
	a := s.config.Forecast
	err := echo.FormFieldBinder(c).
		Int("traffic", &a.Traffic).
		Float64("base_conversion_rate", &a.BaseConversionRate).
		Float64("base_price", &a.BasePrice).
		Float64("unit_cost", &a.UnitCost).
		Float64("elasticity", &a.Elasticity).
		Float64("avg_quantity", &a.AvgQuantityPerOrder).
		Float64("conversion_cap", &a.ConversionCap).
		Float64("discount_min", &a.DiscountMinPct).
		Float64("discount_max", &a.DiscountMaxPct).
		Float64("discount_step", &a.DiscountStepPct).
		BindError()
	if err != nil {
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) {
			return a, apperrors.Validation(fmt.Sprintf("%s must be a number", bindErr.Field), err).
				WithContext("field", bindErr.Field)
		}
		return a, apperrors.Validation("invalid form input", err)
	}
	return a, nil
}

// buildForecast runs the service and records the outcome.
func (s *Server) buildForecast(a model.ScenarioAssumptions) (model.ScenarioTable, model.ScenarioSummary, error) {
	table, cached, err := s.forecasts.Build(a)
	if err != nil {
		result := "error"
		if errors.Is(err, forecast.ErrInvalidAssumption) {
			result = "invalid"
		}
		s.metrics.ScenarioBuilds.WithLabelValues(result).Inc()
		return model.ScenarioTable{}, model.ScenarioSummary{}, err
	}
	s.metrics.ScenarioBuilds.WithLabelValues("ok").Inc()
	if cached {
		s.metrics.ScenarioCacheHits.Inc()
	}

	summary, err := forecast.Summarize(table)
	if err != nil {
		return model.ScenarioTable{}, model.ScenarioSummary{}, err
	}
	return table, summary, nil
}

// readTransactions summarizes the optional upload. Failures come back as a
// warning and never block the forecast.
func (s *Server) readTransactions(c echo.Context) (*model.TransactionsSummary, string) {
	fh, err := c.FormFile(transactionsField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, ""
	}
	if err != nil {
		return nil, s.transactionsWarning(err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, s.transactionsWarning(err)
	}
	defer f.Close()

	summary, err := tabular.SummarizeTransactions(f)
	if err != nil {
		return nil, s.transactionsWarning(err)
	}
	return &summary, ""
}

func (s *Server) transactionsWarning(err error) string {
	slog.Warn("transactions upload ignored", "error", err)
	s.metrics.UploadWarnings.WithLabelValues(transactionsField).Inc()
	return fmt.Sprintf("Could not read transactions file: %v", err)
}

func chartBars(t model.ScenarioTable) []scenarioBar {
	var maxRev, maxCM float64
	for _, r := range t.Rows {
		maxRev = math.Max(maxRev, math.Abs(r.Revenue))
		maxCM = math.Max(maxCM, math.Abs(r.ContributionMargin))
	}
	width := func(v, limit float64) float64 {
		if limit == 0 {
			return 0
		}
		return math.Abs(v) / limit * 100
	}

	bars := make([]scenarioBar, 0, len(t.Rows))
	for _, r := range t.Rows {
		bars = append(bars, scenarioBar{
			Discount:          r.DiscountRatePct,
			Revenue:           r.Revenue,
			RevenueWidth:      width(r.Revenue, maxRev),
			Contribution:      r.ContributionMargin,
			ContributionWidth: width(r.ContributionMargin, maxCM),
		})
	}
	return bars
}

// assumptionQuery is the inverse of bindAssumptions.
func assumptionQuery(a model.ScenarioAssumptions) url.Values {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return url.Values{
		"traffic":              {strconv.Itoa(a.Traffic)},
		"base_conversion_rate": {f(a.BaseConversionRate)},
		"base_price":           {f(a.BasePrice)},
		"unit_cost":            {f(a.UnitCost)},
		"elasticity":           {f(a.Elasticity)},
		"avg_quantity":         {f(a.AvgQuantityPerOrder)},
		"conversion_cap":       {f(a.ConversionCap)},
		"discount_min":         {f(a.DiscountMinPct)},
		"discount_max":         {f(a.DiscountMaxPct)},
		"discount_step":        {f(a.DiscountStepPct)},
	}
}
