package unitecon

import (
	"math"

	"github.com/incubazar/venture-calc/internal/model"
)

// RetentionStatus grades net revenue retention.
type RetentionStatus string

const (
	RetentionExcellent        RetentionStatus = "excellent"
	RetentionGood             RetentionStatus = "good"
	RetentionNeedsImprovement RetentionStatus = "needs-improvement"
	RetentionCritical         RetentionStatus = "critical"
)

// RetentionInputs is a cohort's MRR movement over a period. When EndMRR is 0
// it is derived from the start and the three movements.
type RetentionInputs struct {
	StartMRR    float64 `json:"start_mrr" yaml:"start_mrr"`
	EndMRR      float64 `json:"end_mrr" yaml:"end_mrr"`
	Expansion   float64 `json:"expansion" yaml:"expansion"`
	Contraction float64 `json:"contraction" yaml:"contraction"`
	Churn       float64 `json:"churn" yaml:"churn"`
}

// RetentionResult is the output of Retention.
type RetentionResult struct {
	EndMRR    float64         `json:"end_mrr"`
	NRR       float64         `json:"nrr"`
	Status    RetentionStatus `json:"status"`
	Benchmark string          `json:"benchmark"`
}

// Retention computes NRR as end/start in percent. A zero start yields 0.
func Retention(in RetentionInputs) RetentionResult {
	start := model.NonNegative(in.StartMRR)
	end := model.NonNegative(in.EndMRR)
	if end == 0 {
		end = math.Max(0, start+
			model.NonNegative(in.Expansion)-
			model.NonNegative(in.Contraction)-
			model.NonNegative(in.Churn))
	}

	res := RetentionResult{EndMRR: end}
	if start > 0 {
		res.NRR = model.Bounded(model.Quotient(end, start) * 100)
	}
	switch {
	case res.NRR >= 120:
		res.Status = RetentionExcellent
		res.Benchmark = "World-class! NRR above 120% indicates strong expansion revenue and minimal churn."
	case res.NRR >= 100:
		res.Status = RetentionGood
		res.Benchmark = "Solid retention. Focus on expansion to push NRR above 120%."
	case res.NRR >= 85:
		res.Status = RetentionNeedsImprovement
		res.Benchmark = "Below 100% NRR means you are losing revenue. Address churn immediately."
	default:
		res.Status = RetentionCritical
		res.Benchmark = "Critical churn levels. Your revenue base is eroding rapidly."
	}
	return res
}
