package workbook

import (
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/incubazar/venture-calc/internal/benchmark"
	"github.com/incubazar/venture-calc/internal/equity"
	"github.com/incubazar/venture-calc/internal/runway"
	"github.com/incubazar/venture-calc/internal/valuation"
)

// Policy aggregates every calculator's tunable tables.
type Policy struct {
	Equity    equity.Policy    `json:"equity" yaml:"equity"`
	Valuation valuation.Policy `json:"valuation" yaml:"valuation"`
	Runway    runway.Policy    `json:"runway" yaml:"runway"`
}

// DefaultPolicy returns the built-in tables for every calculator.
func DefaultPolicy() Policy {
	return Policy{
		Equity:    equity.DefaultPolicy(),
		Valuation: valuation.DefaultPolicy(),
		Runway:    runway.DefaultPolicy(),
	}
}

// LoadPolicy reads a YAML policy file and overlays it on the defaults. Keys
// absent from the file keep their default values; map entries and lists
// present in the file replace the default entry as a whole.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, eris.Wrapf(err, "workbook: read policy %s", path)
	}

	// The YAML has a top-level "policy" key
	wrapper := struct {
		Policy *Policy `yaml:"policy"`
	}{Policy: &p}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return DefaultPolicy(), eris.Wrap(err, "workbook: parse policy")
	}
	if err := p.Validate(); err != nil {
		return DefaultPolicy(), err
	}
	return p, nil
}

// Validate checks that the tables are internally consistent.
func (p Policy) Validate() error {
	w := p.Equity.Weights
	for _, v := range []float64{w.Capital, w.Time, w.Role, w.IP} {
		if v < 0 {
			return eris.New("workbook: equity weights must be non-negative")
		}
	}
	if math.Abs(w.Sum()-100) > 1e-6 {
		return eris.Errorf("workbook: equity weights sum to %.2f, want 100", w.Sum())
	}
	if p.Equity.MaxOptionPool < 0 || p.Equity.MaxOptionPool > 100 {
		return eris.Errorf("workbook: max option pool %.2f outside [0, 100]", p.Equity.MaxOptionPool)
	}
	for _, r := range p.Equity.FutureRounds {
		if r.RaiseMultiple < 0 || r.ValuationMultiple < 0 {
			return eris.Errorf("workbook: future round %q has a negative multiple", r.Name)
		}
	}

	b := p.Valuation.Berkus
	if b.FactorCap < 0 || b.RolloutARRShare < 0 {
		return eris.New("workbook: berkus cap and rollout share must be non-negative")
	}
	for stage, c := range b.StageCaps {
		if c < 0 {
			return eris.Errorf("workbook: berkus cap for %s is negative", stage)
		}
	}
	for ind, m := range b.IndustryMultipliers {
		if m < 0 {
			return eris.Errorf("workbook: industry multiplier for %s is negative", ind)
		}
	}

	g := p.Valuation.Growth
	if g.SlowThreshold > g.StrongThreshold || g.StrongThreshold > g.HyperThreshold {
		return eris.New("workbook: growth thresholds must be ordered slow <= strong <= hyper")
	}
	if g.HyperPremium < 0 || g.StrongPremium < 0 || g.SlowDiscount < 0 {
		return eris.New("workbook: growth adjustments must be non-negative")
	}

	r := p.Valuation.Range
	if r.LowDiscount <= 0 || r.LowDiscount > 1 || r.HighPremium < 1 {
		return eris.New("workbook: range needs 0 < low_discount <= 1 and high_premium >= 1")
	}

	for ind, bm := range p.Valuation.Benchmarks {
		for _, t := range []benchmark.Thresholds{bm.LTVCACRatio, bm.NRR} {
			if t.Excellent < t.Good || t.Good < t.Acceptable {
				return eris.Errorf("workbook: %s benchmark thresholds are out of order", ind)
			}
		}
		m := bm.RevenueMultiples
		for _, band := range []benchmark.MultipleRange{m.PreSeed, m.Seed, m.SeriesA} {
			if band.Low < 0 || band.Low > band.High {
				return eris.Errorf("workbook: %s revenue multiple band is invalid", ind)
			}
		}
	}

	if p.Runway.CriticalMonths < 0 || p.Runway.CriticalMonths > p.Runway.WarningMonths {
		return eris.New("workbook: runway thresholds must be ordered 0 <= critical <= warning")
	}
	return nil
}
