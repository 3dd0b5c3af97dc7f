package workbook

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/benchmark"
	"github.com/incubazar/venture-calc/internal/equity"
	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/runway"
	"github.com/incubazar/venture-calc/internal/unitecon"
	"github.com/incubazar/venture-calc/internal/valuation"
)

// Results holds the output of every calculator that ran. Calculators whose
// inputs were absent leave their field nil.
type Results struct {
	Company        model.CompanyBasics         `json:"company"`
	Runway         *runway.Result              `json:"runway,omitempty"`
	LTVCAC         *unitecon.LTVCACResult      `json:"ltv_cac,omitempty"`
	LTVCACBench    *unitecon.Comparison        `json:"ltv_cac_benchmark,omitempty"`
	Sensitivity    *unitecon.SensitivityMatrix `json:"sensitivity,omitempty"`
	Retention      *unitecon.RetentionResult   `json:"retention,omitempty"`
	RetentionBench *unitecon.Comparison        `json:"retention_benchmark,omitempty"`
	EquitySplit    *equity.SplitResult         `json:"equity_split,omitempty"`
	Dilution       *equity.DilutionResult      `json:"dilution,omitempty"`
	Valuation      *valuation.Result           `json:"valuation,omitempty"`
	Dashboard      Dashboard                   `json:"dashboard"`
}

// Card is one dashboard headline.
type Card struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Value  string `json:"value"`
	Detail string `json:"detail"`
	Status string `json:"status,omitempty"`
}

// Dashboard is the summary view over Results.
type Dashboard struct {
	CompanyName string `json:"company_name"`
	Cards       []Card `json:"cards"`
}

// Engine runs every calculator against a single Policy.
type Engine struct {
	policy    Policy
	equity    *equity.Calculator
	valuation *valuation.Calculator
	runway    *runway.Calculator
}

// NewEngine creates an Engine for p.
func NewEngine(p Policy) *Engine {
	return &Engine{
		policy:    p,
		equity:    equity.NewCalculator(p.Equity),
		valuation: valuation.NewCalculator(p.Valuation),
		runway:    runway.NewCalculator(p.Runway),
	}
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Equity returns the engine's equity calculator.
func (e *Engine) Equity() *equity.Calculator { return e.equity }

// Valuation returns the engine's valuation calculator.
func (e *Engine) Valuation() *valuation.Calculator { return e.valuation }

// Runway returns the engine's runway calculator.
func (e *Engine) Runway() *runway.Calculator { return e.runway }

// Benchmarks returns the industry table the engine grades against.
func (e *Engine) Benchmarks() benchmark.Table { return e.policy.Valuation.Benchmarks }

var defaultEngine = NewEngine(DefaultPolicy())

// Compute runs s with the default policy.
func Compute(s State) Results {
	return defaultEngine.Compute(s)
}

// Compute runs every calculator whose inputs are present in s.
func (e *Engine) Compute(s State) Results {
	s = Seed(s)
	res := Results{Company: s.Company}

	if s.Runway != nil {
		r := e.runway.Calculate(*s.Runway)
		res.Runway = &r
	}

	if ue := s.UnitEconomics; ue != nil {
		lc := unitecon.LTVCAC(ue.LTV, ue.CAC)
		res.LTVCAC = &lc
		sm := unitecon.Sensitivity(ue.LTV, ue.CAC, nil, nil)
		res.Sensitivity = &sm

		bench := e.policy.Valuation.Benchmarks.For(s.Company.Industry)
		if s.Company.Industry != "" && lc.CAC > 0 {
			cmp := unitecon.CompareTo(bench, lc.Ratio)
			res.LTVCACBench = &cmp
		}
		if ue.Retention != nil {
			rr := unitecon.Retention(*ue.Retention)
			res.Retention = &rr
			if s.Company.Industry != "" {
				cmp := unitecon.CompareNRRTo(bench, rr.NRR)
				res.RetentionBench = &cmp
			}
		}
	}

	if len(s.Equity.CoFounders) > 0 {
		sr := e.equity.Split(s.Equity.CoFounders)
		res.EquitySplit = &sr
	}
	if s.Equity.Dilution != nil {
		dr := e.equity.Dilution(*s.Equity.Dilution)
		res.Dilution = &dr
	}

	if s.Valuation != nil {
		vr := e.valuation.Calculate(*s.Valuation)
		res.Valuation = &vr
	}

	res.Dashboard = buildDashboard(res)

	zap.L().Info("workbook: computed",
		zap.String("company", s.Company.CompanyName),
		zap.Int("cards", len(res.Dashboard.Cards)),
	)
	return res
}

// Seed fills unset runway and valuation inputs from the company basics.
func Seed(s State) State {
	c := s.Company
	if s.Runway != nil {
		r := *s.Runway
		if r.CashInBank == 0 {
			r.CashInBank = c.CashInBank
		}
		if r.MonthlyRevenue == 0 {
			r.MonthlyRevenue = c.MonthlyRevenue
		}
		s.Runway = &r
	}
	if s.Valuation != nil {
		v := *s.Valuation
		if v.Industry == "" {
			v.Industry = c.Industry
		}
		if v.MRR == 0 && v.ARR == 0 {
			v.MRR = c.MonthlyRevenue
		}
		s.Valuation = &v
	}
	if s.Company.Industry != "" && !s.Company.Industry.Valid() {
		s.Company.Industry = model.ParseIndustry(string(s.Company.Industry))
	}
	return s
}

func buildDashboard(res Results) Dashboard {
	d := Dashboard{CompanyName: res.Company.CompanyName, Cards: []Card{}}

	if r := res.Runway; r != nil {
		detail := fmt.Sprintf("Net burn %s/mo", format.Currency(r.NetBurnRate))
		if r.Unbounded {
			detail = fmt.Sprintf("Cash-flow positive by %s/mo", format.Currency(-r.NetBurnRate))
		}
		d.Cards = append(d.Cards, Card{
			Key:    "runway",
			Title:  "Cash Runway",
			Value:  format.Months(r.RunwayMonths, r.Unbounded),
			Detail: detail,
			Status: string(r.RunwayStatus),
		})
	}

	if lc := res.LTVCAC; lc != nil {
		detail := lc.Recommendation
		if res.LTVCACBench != nil {
			detail = res.LTVCACBench.Verdict
		}
		value := format.NotAvailable
		if lc.CAC > 0 {
			value = format.Ratio(lc.Ratio)
		}
		d.Cards = append(d.Cards, Card{
			Key:    "ltv_cac",
			Title:  "LTV:CAC",
			Value:  value,
			Detail: detail,
			Status: string(lc.Rating),
		})
	}

	switch {
	case res.Dilution != nil:
		dr := res.Dilution
		d.Cards = append(d.Cards, Card{
			Key:    "ownership",
			Title:  "Founder Ownership",
			Value:  format.Percentage(dr.NewOwnership, 1),
			Detail: fmt.Sprintf("After the round at %s post-money", format.Number(dr.PostMoneyValuation)),
		})
	case res.EquitySplit != nil && len(res.EquitySplit.Founders) > 0:
		sr := res.EquitySplit
		d.Cards = append(d.Cards, Card{
			Key:    "ownership",
			Title:  "Founder Ownership",
			Value:  format.Percentage(sr.Founders[0].EquityPercentage, 1),
			Detail: sr.Recommendation,
		})
	}

	if v := res.Valuation; v != nil {
		r := v.RecommendedRange
		d.Cards = append(d.Cards, Card{
			Key:    "valuation",
			Title:  "Valuation",
			Value:  format.Number(r.Mid),
			Detail: fmt.Sprintf("Range %s to %s", format.Number(r.Low), format.Number(r.High)),
			Status: string(v.Method),
		})
	}
	return d
}
