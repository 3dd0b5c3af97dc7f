package equity

import (
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
)

// DilutionInputs describes a single priced round from a founder's point of view.
type DilutionInputs struct {
	CurrentOwnership  float64 `json:"current_ownership" yaml:"current_ownership"` // percent
	PreMoneyValuation float64 `json:"pre_money_valuation" yaml:"pre_money_valuation"`
	InvestmentAmount  float64 `json:"investment_amount" yaml:"investment_amount"`
	OptionPoolSize    float64 `json:"option_pool_size" yaml:"option_pool_size"` // percent, 0-30
}

// CapTable is the post-round, post-pool ownership in percent. The four
// entries always sum to 100.
type CapTable struct {
	Founder      float64 `json:"founder"`
	OtherHolders float64 `json:"other_holders"`
	Investor     float64 `json:"investor"`
	OptionPool   float64 `json:"option_pool"`
}

// Total returns the sum of all cap table rows.
func (c CapTable) Total() float64 {
	return c.Founder + c.OtherHolders + c.Investor + c.OptionPool
}

// FutureRound is one projected subsequent round.
type FutureRound struct {
	Round              string  `json:"round"`
	AssumedRaise       float64 `json:"assumed_raise"`
	AssumedValuation   float64 `json:"assumed_valuation"`
	RoundDilution      float64 `json:"round_dilution"`
	ProjectedOwnership float64 `json:"projected_ownership"`
	CumulativeDilution float64 `json:"cumulative_dilution"`
}

// DilutionResult is the output of Dilution.
type DilutionResult struct {
	PostMoneyValuation float64       `json:"post_money_valuation"`
	InvestorOwnership  float64       `json:"investor_ownership"`
	OptionPoolImpact   float64       `json:"option_pool_impact"`
	NewOwnership       float64       `json:"new_ownership"`
	DilutionPercentage float64       `json:"dilution_percentage"`
	CapTable           CapTable      `json:"cap_table"`
	FutureRounds       []FutureRound `json:"future_rounds"`
}

// Dilution forecasts dilution using the default round assumptions.
func Dilution(in DilutionInputs) DilutionResult {
	return defaultCalculator.Dilution(in)
}

// Dilution models one priced round followed by the policy's projected rounds.
//
// The investor is sized against the post-money valuation first; the option
// pool is then carved out of the post-money cap table and dilutes every
// holder pro-rata, the new investor included. A zero pre-money with a
// non-zero investment gives the investor 100%.
func (c *Calculator) Dilution(in DilutionInputs) DilutionResult {
	maxPool := c.policy.MaxOptionPool
	if maxPool <= 0 || maxPool > 100 {
		maxPool = 100
	}
	current := model.Clamp(in.CurrentOwnership, 0, 100)
	pre := model.NonNegative(in.PreMoneyValuation)
	investment := model.NonNegative(in.InvestmentAmount)
	pool := model.Clamp(in.OptionPoolSize, 0, maxPool)

	post := pre + investment
	var investorPct float64
	if post > 0 {
		investorPct = investment / post * 100
	}

	keep := (1 - investorPct/100) * (1 - pool/100)
	newOwnership := current * keep

	res := DilutionResult{
		PostMoneyValuation: post,
		InvestorOwnership:  investorPct,
		OptionPoolImpact:   pool,
		NewOwnership:       newOwnership,
		DilutionPercentage: current - newOwnership,
		CapTable: CapTable{
			Founder:      newOwnership,
			OtherHolders: (100 - current) * keep,
			Investor:     investorPct * (1 - pool/100),
			OptionPool:   pool,
		},
		FutureRounds: c.projectRounds(current, newOwnership, post, investment),
	}

	zap.L().Debug("equity: dilution computed",
		zap.Float64("post_money", post),
		zap.Float64("investor_pct", investorPct),
		zap.Float64("new_ownership", newOwnership),
	)

	return res
}

func (c *Calculator) projectRounds(original, ownership, post, investment float64) []FutureRound {
	rounds := make([]FutureRound, 0, len(c.policy.FutureRounds))
	prevPost := post
	for _, r := range c.policy.FutureRounds {
		raise := model.Bounded(investment * model.NonNegative(r.RaiseMultiple))
		valuation := model.Bounded(prevPost * model.NonNegative(r.ValuationMultiple))

		var dilution float64
		if denom := valuation + raise; denom > 0 {
			dilution = model.Quotient(raise, denom) * 100
		}
		ownership *= 1 - dilution/100
		prevPost = model.Bounded(valuation + raise)

		rounds = append(rounds, FutureRound{
			Round:              r.Name,
			AssumedRaise:       raise,
			AssumedValuation:   valuation,
			RoundDilution:      dilution,
			ProjectedOwnership: ownership,
			CumulativeDilution: original - ownership,
		})
	}
	return rounds
}
