// Package equity computes co-founder equity splits and round-by-round
// ownership dilution.
package equity

// Weights assigns each contribution factor its share of the pooled 100%.
// Values are percentages and are expected to sum to 100.
type Weights struct {
	Capital float64 `json:"capital" yaml:"capital" mapstructure:"capital"`
	Time    float64 `json:"time" yaml:"time" mapstructure:"time"`
	Role    float64 `json:"role" yaml:"role" mapstructure:"role"`
	IP      float64 `json:"ip" yaml:"ip" mapstructure:"ip"`
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Capital + w.Time + w.Role + w.IP
}

func (w Weights) values() [numFactors]float64 {
	return [numFactors]float64{w.Capital, w.Time, w.Role, w.IP}
}

func weightsFrom(v [numFactors]float64) Weights {
	return Weights{Capital: v[0], Time: v[1], Role: v[2], IP: v[3]}
}

// RoundAssumption describes a projected future priced round relative to the
// current one: the raise is RaiseMultiple times today's investment and the
// pre-money is ValuationMultiple times the previous post-money.
type RoundAssumption struct {
	Name              string  `json:"name" yaml:"name" mapstructure:"name"`
	RaiseMultiple     float64 `json:"raise_multiple" yaml:"raise_multiple" mapstructure:"raise_multiple"`
	ValuationMultiple float64 `json:"valuation_multiple" yaml:"valuation_multiple" mapstructure:"valuation_multiple"`
}

// Policy holds the tunable constants for both calculators.
type Policy struct {
	Weights       Weights           `json:"weights" yaml:"weights" mapstructure:"weights"`
	FutureRounds  []RoundAssumption `json:"future_rounds" yaml:"future_rounds" mapstructure:"future_rounds"`
	MaxOptionPool float64           `json:"max_option_pool" yaml:"max_option_pool" mapstructure:"max_option_pool"`
}

// DefaultPolicy returns the built-in weights and round assumptions.
func DefaultPolicy() Policy {
	return Policy{
		Weights: Weights{Capital: 30, Time: 30, Role: 20, IP: 20},
		FutureRounds: []RoundAssumption{
			{Name: "Series A", RaiseMultiple: 3, ValuationMultiple: 3},
			{Name: "Series B", RaiseMultiple: 4, ValuationMultiple: 3},
			{Name: "Series C", RaiseMultiple: 5, ValuationMultiple: 2.5},
		},
		MaxOptionPool: 30,
	}
}

// Calculator runs the equity calculators against a Policy.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a Calculator with the given policy.
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// Policy returns the calculator's policy.
func (c *Calculator) Policy() Policy {
	return c.policy
}

var defaultCalculator = NewCalculator(DefaultPolicy())
