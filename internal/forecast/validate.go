package forecast

import (
	"errors"
	"fmt"
	"math"

	"InsightDesk/internal/model"
)

// MaxGridPoints bounds the number of rows a single forecast may produce.
const MaxGridPoints = 2000

// MinDiscountStepPct is the smallest step whose rows stay distinct after the
// discount column is rounded to one decimal.
const MinDiscountStepPct = 0.1

// ErrInvalidAssumption is wrapped by every FieldError.
var ErrInvalidAssumption = errors.New("invalid scenario assumption")

// FieldError names the assumption that failed validation.
type FieldError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *FieldError) Unwrap() error { return ErrInvalidAssumption }

// Validate checks every assumption and returns the first violation as a *FieldError.
func Validate(a model.ScenarioAssumptions) error {
	floats := []struct {
		field string
		v     float64
	}{
		{"base_conversion_rate", a.BaseConversionRate},
		{"base_price", a.BasePrice},
		{"unit_cost", a.UnitCost},
		{"elasticity", a.Elasticity},
		{"avg_quantity_per_order", a.AvgQuantityPerOrder},
		{"conversion_cap", a.ConversionCap},
		{"discount_min", a.DiscountMinPct},
		{"discount_max", a.DiscountMaxPct},
		{"discount_step", a.DiscountStepPct},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &FieldError{Field: f.field, Value: f.v, Reason: "must be a finite number"}
		}
	}

	switch {
	case a.Traffic <= 0:
		return &FieldError{Field: "traffic", Value: float64(a.Traffic), Reason: "must be positive"}
	case a.BaseConversionRate <= 0 || a.BaseConversionRate > 1:
		return &FieldError{Field: "base_conversion_rate", Value: a.BaseConversionRate, Reason: "must be in (0, 1]"}
	case a.BasePrice <= 0:
		return &FieldError{Field: "base_price", Value: a.BasePrice, Reason: "must be positive"}
	case a.UnitCost < 0:
		return &FieldError{Field: "unit_cost", Value: a.UnitCost, Reason: "must not be negative"}
	case a.Elasticity <= 0:
		return &FieldError{Field: "elasticity", Value: a.Elasticity, Reason: "must be positive"}
	case a.AvgQuantityPerOrder <= 0:
		return &FieldError{Field: "avg_quantity_per_order", Value: a.AvgQuantityPerOrder, Reason: "must be positive"}
	case a.ConversionCap <= 0 || a.ConversionCap > 1:
		return &FieldError{Field: "conversion_cap", Value: a.ConversionCap, Reason: "must be in (0, 1]"}
	case a.DiscountMinPct < 0:
		return &FieldError{Field: "discount_min", Value: a.DiscountMinPct, Reason: "must not be negative"}
	case a.DiscountMaxPct >= 100:
		// a 100% discount prices every order at zero
		return &FieldError{Field: "discount_max", Value: a.DiscountMaxPct, Reason: "must be below 100"}
	case a.DiscountMinPct > a.DiscountMaxPct:
		return &FieldError{Field: "discount_min", Value: a.DiscountMinPct, Reason: "must not exceed discount_max"}
	case a.DiscountStepPct <= 0:
		return &FieldError{Field: "discount_step", Value: a.DiscountStepPct, Reason: "must be positive"}
	case a.DiscountStepPct < MinDiscountStepPct:
		return &FieldError{Field: "discount_step", Value: a.DiscountStepPct, Reason: fmt.Sprintf("must be at least %g", MinDiscountStepPct)}
	}

	if steps := (a.DiscountMaxPct - a.DiscountMinPct) / a.DiscountStepPct; steps+1 > MaxGridPoints {
		return &FieldError{
			Field:  "discount_step",
			Value:  a.DiscountStepPct,
			Reason: fmt.Sprintf("produces more than %d grid points", MaxGridPoints),
		}
	}
	return nil
}
