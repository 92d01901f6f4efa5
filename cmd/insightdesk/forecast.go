package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"InsightDesk/internal/forecast"
	"InsightDesk/internal/tabular"
)

var (
	forecastOut          string
	forecastTransactions string
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Build the discount scenario table",
	Long: `Builds one scenario row per discount step and writes promo_scenarios.csv.
Assumptions default to the forecast section of the config file; any flag
overrides it.

Examples:
  insightdesk forecast --out promo_scenarios.csv
  insightdesk forecast --traffic 250000 --elasticity 2.2 --discount-max 30`,
	Args: cobra.NoArgs,
	RunE: runForecast,
}

func init() {
	f := forecastCmd.Flags()
	f.Int("traffic", 0, "Sessions in the period")
	f.Float64("base-conversion-rate", 0, "Conversion rate with no discount")
	f.Float64("base-price", 0, "List price per unit")
	f.Float64("unit-cost", 0, "Cost per unit")
	f.Float64("elasticity", 0, "Conversion lift per 100% discount")
	f.Float64("avg-quantity", 0, "Average units per order")
	f.Float64("conversion-cap", 0, "Upper bound on conversion")
	f.Float64("discount-min", 0, "Smallest discount, percent")
	f.Float64("discount-max", 0, "Largest discount, percent")
	f.Float64("discount-step", 0, "Discount increment, percent")
	f.StringVar(&forecastOut, "out", "", "Scenario CSV to write (default stdout)")
	f.StringVar(&forecastTransactions, "transactions", "", "Optional transactions CSV shown as context")
}

func runForecast(cmd *cobra.Command, _ []string) error {
	a := cfg.Forecast
	flags := cmd.Flags()
	if flags.Changed("traffic") {
		a.Traffic, _ = flags.GetInt("traffic")
	}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"base-conversion-rate", &a.BaseConversionRate},
		{"base-price", &a.BasePrice},
		{"unit-cost", &a.UnitCost},
		{"elasticity", &a.Elasticity},
		{"avg-quantity", &a.AvgQuantityPerOrder},
		{"conversion-cap", &a.ConversionCap},
		{"discount-min", &a.DiscountMinPct},
		{"discount-max", &a.DiscountMaxPct},
		{"discount-step", &a.DiscountStepPct},
	}
	for _, fl := range floats {
		if flags.Changed(fl.name) {
			*fl.dst, _ = flags.GetFloat64(fl.name)
		}
	}

	table, err := forecast.BuildScenarios(a)
	if err != nil {
		return err
	}
	summary, err := forecast.Summarize(table)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(forecastOut, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()
	if err := tabular.WriteScenarios(out, table); err != nil {
		return fmt.Errorf("write scenario csv: %w", err)
	}

	slog.Info("scenarios built",
		"rows", len(table.Rows),
		"best_revenue_discount", summary.BestRevenue.DiscountRatePct,
		"best_revenue", summary.BestRevenue.Revenue,
		"best_contribution_discount", summary.BestContribution.DiscountRatePct,
		"best_contribution", summary.BestContribution.ContributionMargin,
		"out", outputName(forecastOut),
	)

	if forecastTransactions != "" {
		summarizeTransactionsFile(forecastTransactions)
	}
	return nil
}

// summarizeTransactionsFile logs the optional context file. Failures are warnings only.
func summarizeTransactionsFile(path string) {
	in, closeIn, err := openInput(path)
	if err != nil {
		slog.Warn("could not read transactions file", "path", path, "error", err)
		return
	}
	defer closeIn()

	s, err := tabular.SummarizeTransactions(in)
	if err != nil {
		slog.Warn("could not read transactions file", "path", path, "error", err)
		return
	}
	attrs := []any{"path", path, "rows", s.Rows, "columns", s.Columns}
	if s.HasQty {
		attrs = append(attrs, "total_units", s.TotalUnits)
	}
	slog.Info("transactions loaded", attrs...)
}
