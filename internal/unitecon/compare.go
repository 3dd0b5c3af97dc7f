package unitecon

import (
	"fmt"

	"github.com/incubazar/venture-calc/internal/benchmark"
	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
)

// Tier places a metric against an industry's thresholds.
type Tier string

const (
	TierExcellent  Tier = "excellent"
	TierGood       Tier = "good"
	TierAcceptable Tier = "acceptable"
	TierBelow      Tier = "below"
)

// Comparison is a metric measured against its industry benchmark.
type Comparison struct {
	Industry   model.Industry       `json:"industry"`
	Metric     string               `json:"metric"`
	Value      float64              `json:"value"`
	Thresholds benchmark.Thresholds `json:"thresholds"`
	Tier       Tier                 `json:"tier"`
	Verdict    string               `json:"verdict"`
}

func tierFor(v float64, t benchmark.Thresholds) Tier {
	switch {
	case v >= t.Excellent:
		return TierExcellent
	case v >= t.Good:
		return TierGood
	case v >= t.Acceptable:
		return TierAcceptable
	default:
		return TierBelow
	}
}

// Compare measures an LTV:CAC ratio against the industry's thresholds.
func Compare(industry model.Industry, ratio float64) Comparison {
	return CompareTo(benchmark.For(industry), ratio)
}

// CompareTo measures an LTV:CAC ratio against b.
func CompareTo(b benchmark.Benchmarks, ratio float64) Comparison {
	c := Comparison{
		Industry:   b.Industry,
		Metric:     "ltv_cac",
		Value:      ratio,
		Thresholds: b.LTVCACRatio,
		Tier:       tierFor(ratio, b.LTVCACRatio),
	}
	c.Verdict = verdict(c, format.Ratio(ratio), format.Ratio(b.LTVCACRatio.Good))
	return c
}

// CompareNRR measures net revenue retention against the industry's thresholds.
func CompareNRR(industry model.Industry, nrr float64) Comparison {
	return CompareNRRTo(benchmark.For(industry), nrr)
}

// CompareNRRTo measures net revenue retention against b.
func CompareNRRTo(b benchmark.Benchmarks, nrr float64) Comparison {
	c := Comparison{
		Industry:   b.Industry,
		Metric:     "nrr",
		Value:      nrr,
		Thresholds: b.NRR,
		Tier:       tierFor(nrr, b.NRR),
	}
	c.Verdict = verdict(c, format.Percentage(nrr, 0), format.Percentage(b.NRR.Good, 0))
	return c
}

func verdict(c Comparison, value, good string) string {
	switch c.Tier {
	case TierExcellent:
		return fmt.Sprintf("%s is excellent for %s, above the top-tier benchmark.", value, c.Industry)
	case TierGood:
		return fmt.Sprintf("%s meets the %s benchmark of %s.", value, c.Industry, good)
	case TierAcceptable:
		return fmt.Sprintf("%s is acceptable for %s but below the %s benchmark.", value, c.Industry, good)
	default:
		return fmt.Sprintf("%s is below the acceptable range for %s. The benchmark is %s.", value, c.Industry, good)
	}
}
