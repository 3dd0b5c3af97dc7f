package valuation

import (
	"math"

	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
)

// Method names how the recommended range was derived.
type Method string

const (
	// MethodBlended reconciles the Berkus and revenue multiple totals.
	MethodBlended Method = "blended"
	// MethodBerkusOnly is used for pre-revenue companies, where a revenue
	// multiple would anchor the range at zero.
	MethodBerkusOnly Method = "berkus_only"
)

// Inputs describes the company being valued.
type Inputs struct {
	Industry     model.Industry     `json:"industry" yaml:"industry"`
	FundingStage model.FundingStage `json:"funding_stage" yaml:"funding_stage"`
	MRR          float64            `json:"mrr" yaml:"mrr"`
	ARR          float64            `json:"arr" yaml:"arr"`
	GrowthRate   float64            `json:"growth_rate" yaml:"growth_rate"` // YoY percent
}

// Range is the recommended valuation band. Low <= Mid <= High.
type Range struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// Result is the output of Calculate.
type Result struct {
	Inputs           Inputs          `json:"inputs"`
	BerkusMethod     Berkus          `json:"berkus_method"`
	RevenueMultiple  RevenueMultiple `json:"revenue_multiple"`
	RecommendedRange Range           `json:"recommended_range"`
	Method           Method          `json:"method"`
	Narrative        string          `json:"narrative"`
}

// Normalize clamps in to its valid domain and reconciles MRR and ARR. MRR
// drives ARR when it is positive; otherwise ARR drives MRR. Unknown industries
// become Other and unknown stages become Seed.
func Normalize(in Inputs) Inputs {
	out := in
	if !out.Industry.Valid() {
		out.Industry = model.ParseIndustry(string(out.Industry))
	}
	if !out.FundingStage.Valid() {
		out.FundingStage = model.ParseFundingStage(string(out.FundingStage))
	}
	out.MRR = model.NonNegative(out.MRR)
	out.ARR = model.NonNegative(out.ARR)
	if out.MRR > 0 {
		out.ARR = out.MRR * 12
	} else {
		out.MRR = out.ARR / 12
	}
	out.GrowthRate = math.Max(-100, model.Bounded(model.Finite(out.GrowthRate)))
	return out
}

// Calculate values a company using the default tables.
func Calculate(in Inputs) Result {
	return defaultCalculator.Calculate(in)
}

// Calculate runs both methods and reconciles them into a recommended range.
func (c *Calculator) Calculate(in Inputs) Result {
	in = Normalize(in)
	berkus := c.berkus(in)
	revenue := c.revenueMultiple(in)

	rng, method := c.reconcile(berkus.TotalValue, revenue.Valuation, in.ARR > 0)

	res := Result{
		Inputs:           in,
		BerkusMethod:     berkus,
		RevenueMultiple:  revenue,
		RecommendedRange: rng,
		Method:           method,
	}
	res.Narrative = narrative(res)

	zap.L().Debug("valuation: computed",
		zap.String("industry", string(in.Industry)),
		zap.String("stage", string(in.FundingStage)),
		zap.String("method", string(method)),
		zap.Float64("berkus_total", berkus.TotalValue),
		zap.Float64("revenue_valuation", revenue.Valuation),
		zap.Float64("mid", rng.Mid),
	)

	return res
}

func (c *Calculator) reconcile(berkus, revenue float64, hasRevenue bool) (Range, Method) {
	lowMul := c.policy.Range.LowDiscount
	highMul := c.policy.Range.HighPremium
	if lowMul <= 0 || lowMul > 1 {
		lowMul = 1
	}
	if highMul < 1 {
		highMul = 1
	}

	if !hasRevenue {
		return Range{
			Low:  berkus * lowMul,
			Mid:  berkus,
			High: berkus * highMul,
		}, MethodBerkusOnly
	}

	return Range{
		Low:  math.Min(berkus, revenue) * lowMul,
		Mid:  (berkus + revenue) / 2,
		High: math.Max(berkus, revenue) * highMul,
	}, MethodBlended
}
