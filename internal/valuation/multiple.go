package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
)

// RevenueMultiple is the market-based ARR multiple valuation.
type RevenueMultiple struct {
	ARR               float64 `json:"arr"`
	BaseMultiple      float64 `json:"base_multiple"`
	GrowthAdjustment  float64 `json:"growth_adjustment"`
	Multiple          float64 `json:"multiple"`
	Valuation         float64 `json:"valuation"`
	MultipleRationale string  `json:"multiple_rationale"`
}

func (c *Calculator) revenueMultiple(in Inputs) RevenueMultiple {
	band := c.policy.Benchmarks.For(in.Industry).RevenueMultiples.ForStage(in.FundingStage)
	base := band.Mid()
	adj := c.growthAdjustment(in.GrowthRate)
	multiple := base * adj

	return RevenueMultiple{
		ARR:               in.ARR,
		BaseMultiple:      base,
		GrowthAdjustment:  adj,
		Multiple:          multiple,
		Valuation:         model.Bounded(in.ARR * multiple),
		MultipleRationale: multipleRationale(in, base, adj, multiple),
	}
}

func (c *Calculator) growthAdjustment(growth float64) float64 {
	g := c.policy.Growth
	switch {
	case growth > g.HyperThreshold:
		return g.HyperPremium
	case growth > g.StrongThreshold:
		return g.StrongPremium
	case growth < g.SlowThreshold:
		return g.SlowDiscount
	default:
		return 1
	}
}

func multipleRationale(in Inputs, base, adj, multiple float64) string {
	growth := format.Percentage(in.GrowthRate, 0)
	s := fmt.Sprintf("Applied %sx ARR multiple: %sx base for %s at %s",
		fixed(multiple, 1), fixed(base, 1), in.Industry, in.FundingStage)
	switch {
	case adj > 1:
		s += fmt.Sprintf(", with a %sx premium for %s growth.", fixed(adj, 2), growth)
	case adj < 1:
		s += fmt.Sprintf(", with a %sx discount for slower %s growth.", fixed(adj, 2), growth)
	default:
		s += fmt.Sprintf(", with no growth adjustment at %s growth.", growth)
	}
	if in.ARR == 0 {
		s += " No recurring revenue yet, so this method contributes no value."
	}
	return s
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
