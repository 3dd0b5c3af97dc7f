// Package unitecon computes customer unit economics: lifetime value,
// acquisition cost, their ratio, and net revenue retention.
package unitecon

import (
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
)

// Rating grades an LTV:CAC ratio.
type Rating string

const (
	RatingStrong           Rating = "strong"
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingCritical         Rating = "critical"
)

// LTVInputs describes the average customer.
type LTVInputs struct {
	ARPU                float64 `json:"arpu" yaml:"arpu"`                                   // monthly
	GrossMargin         float64 `json:"gross_margin" yaml:"gross_margin"`                   // percent
	AvgCustomerLifespan float64 `json:"avg_customer_lifespan" yaml:"avg_customer_lifespan"` // months
}

// CACInputs describes acquisition spend over a period.
type CACInputs struct {
	TotalSalesMarketingSpend float64 `json:"total_sales_marketing_spend" yaml:"total_sales_marketing_spend"`
	NewCustomersAcquired     float64 `json:"new_customers_acquired" yaml:"new_customers_acquired"`
}

// LTVCACResult is the output of LTVCAC.
type LTVCACResult struct {
	LTV            float64 `json:"ltv"`
	CAC            float64 `json:"cac"`
	Ratio          float64 `json:"ratio"`
	Rating         Rating  `json:"rating"`
	Recommendation string  `json:"recommendation"`
}

// LTV returns arpu × lifespan × margin. Margin is clamped to [0, 100].
func LTV(in LTVInputs) float64 {
	return model.Bounded(model.NonNegative(in.ARPU) *
		model.NonNegative(in.AvgCustomerLifespan) *
		model.Clamp(in.GrossMargin, 0, 100) / 100)
}

// CAC returns spend per new customer, or 0 when no customers were acquired.
func CAC(in CACInputs) float64 {
	customers := model.NonNegative(in.NewCustomersAcquired)
	if customers == 0 {
		return 0
	}
	return model.Quotient(model.NonNegative(in.TotalSalesMarketingSpend), customers)
}

// LTVCAC computes both sides and rates the ratio.
func LTVCAC(ltvIn LTVInputs, cacIn CACInputs) LTVCACResult {
	ltv := LTV(ltvIn)
	cac := CAC(cacIn)
	res := rate(ltv, cac)
	zap.L().Debug("unitecon: ltv:cac",
		zap.Float64("ltv", ltv),
		zap.Float64("cac", cac),
		zap.Float64("ratio", res.Ratio),
		zap.String("rating", string(res.Rating)),
	)
	return res
}

func rate(ltv, cac float64) LTVCACResult {
	res := LTVCACResult{LTV: ltv, CAC: cac}
	if cac == 0 {
		res.Rating = RatingCritical
		res.Recommendation = "Please enter valid customer acquisition data."
		return res
	}
	res.Ratio = model.Quotient(ltv, cac)
	res.Rating = RatingFor(res.Ratio)
	switch res.Rating {
	case RatingStrong:
		res.Recommendation = "Excellent! Your unit economics are strong. You have a scalable business model."
	case RatingGood:
		res.Recommendation = "Good ratio. Focus on improving either LTV (reduce churn, increase ARPU) or reducing CAC."
	case RatingNeedsImprovement:
		res.Recommendation = "Your CAC is too high relative to LTV. Optimize marketing efficiency or increase customer lifetime value."
	default:
		res.Recommendation = "Critical: You are spending more to acquire customers than they generate in value. Immediate action required."
	}
	return res
}

// RatingFor grades a ratio: 3 and above is strong, 2 good, 1 needs
// improvement, below 1 critical.
func RatingFor(ratio float64) Rating {
	switch {
	case ratio >= 3:
		return RatingStrong
	case ratio >= 2:
		return RatingGood
	case ratio >= 1:
		return RatingNeedsImprovement
	default:
		return RatingCritical
	}
}
