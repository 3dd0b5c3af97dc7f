// Package runway projects cash runway from burn rate and models what-if
// scenarios against a baseline.
package runway

import (
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
)

// Status classifies a runway length.
type Status string

const (
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusHealthy  Status = "healthy"
)

// MonthlyExpenses breaks monthly spend into categories.
type MonthlyExpenses struct {
	Salaries  float64 `json:"salaries" yaml:"salaries"`
	Rent      float64 `json:"rent" yaml:"rent"`
	Software  float64 `json:"software" yaml:"software"`
	Marketing float64 `json:"marketing" yaml:"marketing"`
	COGS      float64 `json:"cogs" yaml:"cogs"`
	Other     float64 `json:"other" yaml:"other"`
}

// Total returns the sum of every category.
func (e MonthlyExpenses) Total() float64 {
	return e.Salaries + e.Rent + e.Software + e.Marketing + e.COGS + e.Other
}

func (e MonthlyExpenses) clamped() MonthlyExpenses {
	return MonthlyExpenses{
		Salaries:  model.NonNegative(e.Salaries),
		Rent:      model.NonNegative(e.Rent),
		Software:  model.NonNegative(e.Software),
		Marketing: model.NonNegative(e.Marketing),
		COGS:      model.NonNegative(e.COGS),
		Other:     model.NonNegative(e.Other),
	}
}

func (e MonthlyExpenses) scaled(f float64) MonthlyExpenses {
	return MonthlyExpenses{
		Salaries:  e.Salaries * f,
		Rent:      e.Rent * f,
		Software:  e.Software * f,
		Marketing: e.Marketing * f,
		COGS:      e.COGS * f,
		Other:     e.Other * f,
	}
}

// Inputs is the cash position and monthly flows.
type Inputs struct {
	CashInBank      float64         `json:"cash_in_bank" yaml:"cash_in_bank"`
	MonthlyRevenue  float64         `json:"monthly_revenue" yaml:"monthly_revenue"`
	MonthlyExpenses MonthlyExpenses `json:"monthly_expenses" yaml:"monthly_expenses"`
}

// MonthlyProjection is one point of the cash projection.
type MonthlyProjection struct {
	Month    int     `json:"month"`
	Cash     float64 `json:"cash"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	NetBurn  float64 `json:"net_burn"`
}

// Result is the output of Calculate. When Unbounded is set the company is
// breakeven or cash-flow positive and RunwayMonths is 0.
type Result struct {
	TotalMonthlyExpenses float64             `json:"total_monthly_expenses"`
	NetBurnRate          float64             `json:"net_burn_rate"`
	RunwayMonths         float64             `json:"runway_months"`
	Unbounded            bool                `json:"unbounded"`
	RunwayStatus         Status              `json:"runway_status"`
	ProjectionData       []MonthlyProjection `json:"projection_data"`
}

// Policy holds the status thresholds and projection length.
type Policy struct {
	CriticalMonths   float64 `json:"critical_months" yaml:"critical_months" mapstructure:"critical_months"`
	WarningMonths    float64 `json:"warning_months" yaml:"warning_months" mapstructure:"warning_months"`
	ProjectionMonths int     `json:"projection_months" yaml:"projection_months" mapstructure:"projection_months"`
}

// DefaultPolicy returns critical below 3 months, warning below 6 and an
// 18 point projection.
func DefaultPolicy() Policy {
	return Policy{CriticalMonths: 3, WarningMonths: 6, ProjectionMonths: 18}
}

// Calculator runs runway and what-if calculations against a Policy.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a Calculator. A non-positive projection length falls
// back to the default.
func NewCalculator(policy Policy) *Calculator {
	if policy.ProjectionMonths <= 0 {
		policy.ProjectionMonths = DefaultPolicy().ProjectionMonths
	}
	return &Calculator{policy: policy}
}

// Policy returns the calculator's policy.
func (c *Calculator) Policy() Policy {
	return c.policy
}

var defaultCalculator = NewCalculator(DefaultPolicy())

// Calculate computes runway with the default thresholds.
func Calculate(in Inputs) Result {
	return defaultCalculator.Calculate(in)
}

// Normalize clamps negative or non-finite amounts to zero.
func Normalize(in Inputs) Inputs {
	return Inputs{
		CashInBank:      model.NonNegative(in.CashInBank),
		MonthlyRevenue:  model.NonNegative(in.MonthlyRevenue),
		MonthlyExpenses: in.MonthlyExpenses.clamped(),
	}
}

// Calculate computes burn, runway, status and the monthly cash projection.
func (c *Calculator) Calculate(in Inputs) Result {
	in = Normalize(in)
	total := in.MonthlyExpenses.Total()
	burn := total - in.MonthlyRevenue

	res := Result{
		TotalMonthlyExpenses: total,
		NetBurnRate:          burn,
		RunwayStatus:         StatusHealthy,
	}
	if burn <= 0 {
		res.Unbounded = true
	} else {
		res.RunwayMonths = model.Quotient(in.CashInBank, burn)
		res.RunwayStatus = c.Status(res.RunwayMonths)
	}

	res.ProjectionData = make([]MonthlyProjection, c.policy.ProjectionMonths)
	cash := in.CashInBank
	for i := range res.ProjectionData {
		if i > 0 {
			cash -= burn
		}
		res.ProjectionData[i] = MonthlyProjection{
			Month:    i,
			Cash:     cash,
			Revenue:  in.MonthlyRevenue,
			Expenses: total,
			NetBurn:  burn,
		}
	}

	zap.L().Debug("runway: computed",
		zap.Float64("net_burn", burn),
		zap.Float64("runway_months", res.RunwayMonths),
		zap.Bool("unbounded", res.Unbounded),
		zap.String("status", string(res.RunwayStatus)),
	)
	return res
}

// Status classifies a finite runway length.
func (c *Calculator) Status(months float64) Status {
	switch {
	case months < c.policy.CriticalMonths:
		return StatusCritical
	case months < c.policy.WarningMonths:
		return StatusWarning
	default:
		return StatusHealthy
	}
}
