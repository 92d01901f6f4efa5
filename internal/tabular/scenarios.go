package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"InsightDesk/internal/model"
)

// ScenarioColumns is the header of an exported scenario table.
var ScenarioColumns = []string{
	"discount_rate_%",
	"conversion_rate",
	"orders",
	"AOV",
	"revenue",
	"contribution_margin",
	"revenue_per_session",
	"cm_per_session",
}

// WriteScenarios writes one CSV row per grid point in table order.
func WriteScenarios(w io.Writer, t model.ScenarioTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ScenarioColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(ScenarioRecord(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ScenarioRecord formats a row with its presentation precision.
func ScenarioRecord(r model.ScenarioRow) []string {
	return []string{
		strconv.FormatFloat(r.DiscountRatePct, 'f', 1, 64),
		strconv.FormatFloat(r.ConversionRate, 'f', 4, 64),
		strconv.FormatInt(r.Orders, 10),
		money(r.AverageOrderValue),
		money(r.Revenue),
		money(r.ContributionMargin),
		money(r.RevenuePerSession),
		money(r.CMPerSession),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
