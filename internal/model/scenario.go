package model

// ScenarioAssumptions holds the baseline business inputs for a promotion forecast.
// Discount fields are percentages (0-100).
type ScenarioAssumptions struct {
	Traffic             int     `json:"traffic" yaml:"traffic"`
	BaseConversionRate  float64 `json:"base_conversion_rate" yaml:"base_conversion_rate"`
	BasePrice           float64 `json:"base_price" yaml:"base_price"`
	UnitCost            float64 `json:"unit_cost" yaml:"unit_cost"`
	Elasticity          float64 `json:"elasticity" yaml:"elasticity"`
	AvgQuantityPerOrder float64 `json:"avg_quantity_per_order" yaml:"avg_quantity_per_order"`
	ConversionCap       float64 `json:"conversion_cap" yaml:"conversion_cap"`
	DiscountMinPct      float64 `json:"discount_min" yaml:"discount_min"`
	DiscountMaxPct      float64 `json:"discount_max" yaml:"discount_max"`
	DiscountStepPct     float64 `json:"discount_step" yaml:"discount_step"`
}

// ScenarioRow is one grid point of a forecast, already rounded for presentation.
type ScenarioRow struct {
	DiscountRatePct    float64 `json:"discount_rate_%"`
	ConversionRate     float64 `json:"conversion_rate"`
	Orders             int64   `json:"orders"`
	AverageOrderValue  float64 `json:"AOV"`
	Revenue            float64 `json:"revenue"`
	ContributionMargin float64 `json:"contribution_margin"`
	RevenuePerSession  float64 `json:"revenue_per_session"`
	CMPerSession       float64 `json:"cm_per_session"`
}

// ScenarioTable is the ordered set of rows, ascending by discount.
type ScenarioTable struct {
	Rows []ScenarioRow `json:"rows"`
}

// ScenarioSummary holds the headline figures shown above the scenario table.
type ScenarioSummary struct {
	BestRevenue      ScenarioRow `json:"best_revenue"`
	BestContribution ScenarioRow `json:"best_contribution"`
}

// TransactionsSummary describes an optional historical transactions upload.
// It is display context only and never feeds the forecast.
type TransactionsSummary struct {
	Rows       int        `json:"rows"`
	Columns    []string   `json:"columns"`
	HasQty     bool       `json:"has_qty"`
	TotalUnits int64      `json:"total_units"`
	Preview    [][]string `json:"preview"`
}
