package valuation

import (
	"fmt"
	"math"
	"sort"

	"github.com/incubazar/venture-calc/internal/format"
)

// Berkus is the Berkus Method breakdown. Each factor is capped at FactorCap.
type Berkus struct {
	FactorCap              float64 `json:"factor_cap"`
	SoundIdea              float64 `json:"sound_idea"`
	Prototype              float64 `json:"prototype"`
	QualityTeam            float64 `json:"quality_team"`
	StrategicRelationships float64 `json:"strategic_relationships"`
	ProductRollout         float64 `json:"product_rollout"`
	TotalValue             float64 `json:"total_value"`
	Explanation            string  `json:"explanation"`
}

type berkusFactor struct {
	name  string
	value float64
}

func (c *Calculator) berkus(in Inputs) Berkus {
	p := c.policy.Berkus
	limit := p.capFor(in.FundingStage)
	scores := p.scoresFor(in.FundingStage)
	industry := p.industryMultiplier(in.Industry)

	capped := func(fraction float64) float64 {
		return math.Max(0, math.Min(limit, limit*fraction))
	}

	prototype := capped(scores.Prototype)
	if in.MRR > 0 {
		prototype = limit
	}
	relationships := scores.Relationships
	if in.ARR > 0 {
		relationships = scores.RelationshipsWithRevenue
	}

	b := Berkus{
		FactorCap:              limit,
		SoundIdea:              capped(scores.SoundIdea * industry),
		Prototype:              prototype,
		QualityTeam:            capped(scores.QualityTeam),
		StrategicRelationships: capped(relationships * industry),
		ProductRollout:         math.Min(limit, in.ARR*p.RolloutARRShare),
	}
	b.ProductRollout = math.Max(0, b.ProductRollout)
	b.TotalValue = b.SoundIdea + b.Prototype + b.QualityTeam + b.StrategicRelationships + b.ProductRollout
	b.Explanation = berkusExplanation(b)
	return b
}

func berkusExplanation(b Berkus) string {
	factors := []berkusFactor{
		{"sound idea", b.SoundIdea},
		{"prototype", b.Prototype},
		{"quality team", b.QualityTeam},
		{"strategic relationships", b.StrategicRelationships},
		{"product rollout", b.ProductRollout},
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].value > factors[j].value
	})
	return fmt.Sprintf(
		"The Berkus Method scores five risk-reducing factors, each capped at %s. "+
			"The strongest contributors are %s (%s) and %s (%s), for a total of %s.",
		format.Currency(b.FactorCap),
		factors[0].name, format.Currency(factors[0].value),
		factors[1].name, format.Currency(factors[1].value),
		format.Currency(b.TotalValue),
	)
}
