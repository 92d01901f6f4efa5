package forecast

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"InsightDesk/internal/model"
)

// gridEpsilon absorbs floating-point drift when deciding whether the
// upper discount bound lands on the step sequence. Measured in steps.
const gridEpsilon = 1e-9

// ErrEmptyTable is returned by the argmax helpers for a table with no rows.
var ErrEmptyTable = errors.New("scenario table is empty")

// gridSteps returns the index of the last grid point.
func gridSteps(a model.ScenarioAssumptions) int {
	return int(math.Floor((a.DiscountMaxPct-a.DiscountMinPct)/a.DiscountStepPct + gridEpsilon))
}

// DiscountGrid returns the discount percentages from min to max inclusive.
// Points are computed as min+i*step so drift does not accumulate.
func DiscountGrid(a model.ScenarioAssumptions) []float64 {
	n := gridSteps(a)
	grid := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		pct := a.DiscountMinPct + float64(i)*a.DiscountStepPct
		grid = append(grid, math.Min(pct, a.DiscountMaxPct))
	}
	return grid
}

// BuildScenarios validates a and computes one row per discount grid point.
func BuildScenarios(a model.ScenarioAssumptions) (model.ScenarioTable, error) {
	if err := Validate(a); err != nil {
		return model.ScenarioTable{}, err
	}

	grid := DiscountGrid(a)
	rows := make([]model.ScenarioRow, len(grid))
	for i, pct := range grid {
		rows[i] = scenarioRow(a, pct/100)
	}
	return model.ScenarioTable{Rows: rows}, nil
}

// scenarioRow evaluates the linear-lift model at discount fraction d.
// Rounding is applied only to the returned fields.
func scenarioRow(a model.ScenarioAssumptions, d float64) model.ScenarioRow {
	traffic := float64(a.Traffic)

	conv := math.Min(a.BaseConversionRate*(1+a.Elasticity*d), a.ConversionCap)
	priceAfter := a.BasePrice * (1 - d)
	aov := priceAfter * a.AvgQuantityPerOrder

	orders := traffic * conv
	revenue := orders * aov

	costPerOrder := a.UnitCost * a.AvgQuantityPerOrder
	marginPerOrder := aov - costPerOrder
	contribution := orders * marginPerOrder

	return model.ScenarioRow{
		DiscountRatePct:    round(d*100, 1),
		ConversionRate:     round(conv, 4),
		Orders:             int64(math.Round(orders)),
		AverageOrderValue:  round(aov, 2),
		Revenue:            round(revenue, 2),
		ContributionMargin: round(contribution, 2),
		RevenuePerSession:  round(revenue/traffic, 2),
		CMPerSession:       round(contribution/traffic, 2),
	}
}

func round(x float64, places int32) float64 {
	v, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return v
}

// BestRevenue returns the row with the highest revenue; the lowest discount wins ties.
func BestRevenue(t model.ScenarioTable) (model.ScenarioRow, error) {
	return argmax(t, func(r model.ScenarioRow) float64 { return r.Revenue })
}

// BestContribution returns the row with the highest contribution margin; the lowest discount wins ties.
func BestContribution(t model.ScenarioTable) (model.ScenarioRow, error) {
	return argmax(t, func(r model.ScenarioRow) float64 { return r.ContributionMargin })
}

func argmax(t model.ScenarioTable, key func(model.ScenarioRow) float64) (model.ScenarioRow, error) {
	if len(t.Rows) == 0 {
		return model.ScenarioRow{}, ErrEmptyTable
	}
	best := t.Rows[0]
	for _, r := range t.Rows[1:] {
		if key(r) > key(best) {
			best = r
		}
	}
	return best, nil
}

// Summarize computes the headline figures for a non-empty table.
func Summarize(t model.ScenarioTable) (model.ScenarioSummary, error) {
	rev, err := BestRevenue(t)
	if err != nil {
		return model.ScenarioSummary{}, err
	}
	cm, err := BestContribution(t)
	if err != nil {
		return model.ScenarioSummary{}, err
	}
	return model.ScenarioSummary{BestRevenue: rev, BestContribution: cm}, nil
}
