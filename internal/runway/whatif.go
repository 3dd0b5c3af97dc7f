package runway

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
)

// ScenarioType is the kind of change a what-if scenario applies.
type ScenarioType string

const (
	ScenarioRevenueChange ScenarioType = "revenue_change"
	ScenarioExpenseChange ScenarioType = "expense_change"
	ScenarioNewHire       ScenarioType = "new_hire"
	ScenarioCostReduction ScenarioType = "cost_reduction"
)

// ScenarioTypes lists every scenario type.
var ScenarioTypes = []ScenarioType{
	ScenarioRevenueChange,
	ScenarioExpenseChange,
	ScenarioNewHire,
	ScenarioCostReduction,
}

// Valid reports whether t is a known scenario type.
func (t ScenarioType) Valid() bool {
	for _, s := range ScenarioTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Scenario describes a single change to the baseline. Impact is a percentage
// when IsPercentage is set and dollars otherwise. New hires are always dollars.
type Scenario struct {
	Type         ScenarioType `json:"type" yaml:"type"`
	Description  string       `json:"description" yaml:"description"`
	Impact       float64      `json:"impact" yaml:"impact"`
	IsPercentage bool         `json:"is_percentage" yaml:"is_percentage"`
}

// WhatIfResult compares the baseline with the scenario. DifferenceInfinite
// is set when either side is unbounded; Difference is then 0.
type WhatIfResult struct {
	Baseline           Result  `json:"baseline"`
	Scenario           Result  `json:"scenario"`
	Difference         float64 `json:"difference"`
	DifferenceInfinite bool    `json:"difference_infinite"`
	Recommendation     string  `json:"recommendation"`
}

// WhatIf runs a scenario with the default thresholds.
func WhatIf(in Inputs, s Scenario) WhatIfResult {
	return defaultCalculator.WhatIf(in, s)
}

// WhatIf applies s to in and compares the two runways.
func (c *Calculator) WhatIf(in Inputs, s Scenario) WhatIfResult {
	in = Normalize(in)
	baseline := c.Calculate(in)
	scenario := c.Calculate(Apply(in, s))

	res := WhatIfResult{Baseline: baseline, Scenario: scenario}
	switch {
	case baseline.Unbounded || scenario.Unbounded:
		res.DifferenceInfinite = baseline.Unbounded != scenario.Unbounded
	default:
		res.Difference = scenario.RunwayMonths - baseline.RunwayMonths
	}
	res.Recommendation = recommendation(baseline, scenario, res.Difference)

	zap.L().Debug("runway: what-if",
		zap.String("scenario", string(s.Type)),
		zap.Float64("difference", res.Difference),
		zap.Bool("difference_infinite", res.DifferenceInfinite),
	)
	return res
}

// Apply returns a copy of in with the scenario applied. Unknown scenario
// types leave the inputs unchanged.
func Apply(in Inputs, s Scenario) Inputs {
	out := Normalize(in)
	impact := model.Bounded(model.Finite(s.Impact))
	total := out.MonthlyExpenses.Total()

	switch s.Type {
	case ScenarioRevenueChange:
		delta := impact
		if s.IsPercentage {
			delta = out.MonthlyRevenue * impact / 100
		}
		out.MonthlyRevenue = math.Max(0, out.MonthlyRevenue+delta)

	case ScenarioExpenseChange:
		delta := impact
		if s.IsPercentage {
			delta = total * impact / 100
		}
		if delta >= 0 {
			out.MonthlyExpenses.Other += delta
		} else {
			out.MonthlyExpenses = reduce(out.MonthlyExpenses, -delta)
		}

	case ScenarioNewHire:
		out.MonthlyExpenses.Salaries += model.NonNegative(impact)

	case ScenarioCostReduction:
		reduction := impact
		if s.IsPercentage {
			reduction = total * impact / 100
		}
		out.MonthlyExpenses = reduce(out.MonthlyExpenses, reduction)
	}
	return Normalize(out)
}

// reduce removes amount from e proportionally across categories. amount is
// clamped to [0, total].
func reduce(e MonthlyExpenses, amount float64) MonthlyExpenses {
	total := e.Total()
	if total <= 0 {
		return e
	}
	amount = model.Clamp(amount, 0, total)
	return e.scaled(model.Quotient(total-amount, total))
}

func recommendation(baseline, scenario Result, diff float64) string {
	switch {
	case baseline.Unbounded && scenario.Unbounded:
		return "The business remains cash-flow positive under this change, so runway stays unbounded."
	case scenario.Unbounded:
		return "This change makes the business cash-flow positive, extending your runway indefinitely. Strongly recommended."
	case baseline.Unbounded:
		return fmt.Sprintf("This change turns the business cash-flow negative, leaving %.1f months of runway. Not recommended without additional funding.",
			scenario.RunwayMonths)
	case diff > 3:
		return fmt.Sprintf("This change extends your runway by %.1f months. Strong improvement, highly recommended.", diff)
	case diff > 0:
		return fmt.Sprintf("This change extends your runway by %.1f months. Consider implementing.", diff)
	case diff == 0:
		return "This change does not affect your runway."
	case diff > -3:
		return fmt.Sprintf("This change reduces your runway by %.1f months. Proceed with caution.", -diff)
	default:
		return fmt.Sprintf("This change reduces your runway by %.1f months. Not recommended without additional funding.", -diff)
	}
}
