// Package valuation estimates early-stage company value with the Berkus
// Method and an ARR revenue multiple, and reconciles the two into a range.
package valuation

import (
	"github.com/incubazar/venture-calc/internal/benchmark"
	"github.com/incubazar/venture-calc/internal/model"
)

// StageScores are the fractions of the factor cap awarded at a funding stage.
type StageScores struct {
	SoundIdea                float64 `json:"sound_idea" yaml:"sound_idea"`
	Prototype                float64 `json:"prototype" yaml:"prototype"` // before any MRR; full cap once MRR > 0
	QualityTeam              float64 `json:"quality_team" yaml:"quality_team"`
	Relationships            float64 `json:"relationships" yaml:"relationships"`
	RelationshipsWithRevenue float64 `json:"relationships_with_revenue" yaml:"relationships_with_revenue"`
}

// BerkusPolicy is the lookup table driving the five Berkus factors.
type BerkusPolicy struct {
	FactorCap           float64                            `json:"factor_cap" yaml:"factor_cap"`
	StageCaps           map[model.FundingStage]float64     `json:"stage_caps" yaml:"stage_caps"`
	StageScores         map[model.FundingStage]StageScores `json:"stage_scores" yaml:"stage_scores"`
	IndustryMultipliers map[model.Industry]float64         `json:"industry_multipliers" yaml:"industry_multipliers"`
	RolloutARRShare     float64                            `json:"rollout_arr_share" yaml:"rollout_arr_share"`
}

// GrowthPolicy adjusts the base revenue multiple by YoY growth.
type GrowthPolicy struct {
	HyperThreshold  float64 `json:"hyper_threshold" yaml:"hyper_threshold"`
	HyperPremium    float64 `json:"hyper_premium" yaml:"hyper_premium"`
	StrongThreshold float64 `json:"strong_threshold" yaml:"strong_threshold"`
	StrongPremium   float64 `json:"strong_premium" yaml:"strong_premium"`
	SlowThreshold   float64 `json:"slow_threshold" yaml:"slow_threshold"`
	SlowDiscount    float64 `json:"slow_discount" yaml:"slow_discount"`
}

// RangePolicy sets the margins used to reconcile the two methods.
type RangePolicy struct {
	LowDiscount float64 `json:"low_discount" yaml:"low_discount"`
	HighPremium float64 `json:"high_premium" yaml:"high_premium"`
}

// Policy holds every table the valuation calculator consults.
type Policy struct {
	Berkus     BerkusPolicy    `json:"berkus" yaml:"berkus"`
	Growth     GrowthPolicy    `json:"growth" yaml:"growth"`
	Range      RangePolicy     `json:"range" yaml:"range"`
	Benchmarks benchmark.Table `json:"benchmarks" yaml:"benchmarks"`
}

// DefaultPolicy returns the built-in valuation tables.
func DefaultPolicy() Policy {
	return Policy{
		Berkus: BerkusPolicy{
			FactorCap: 500_000,
			StageCaps: map[model.FundingStage]float64{
				model.StagePreSeed: 400_000,
			},
			StageScores: map[model.FundingStage]StageScores{
				model.StagePreSeed:  {SoundIdea: 0.7, Prototype: 0.4, QualityTeam: 0.6, Relationships: 0.3, RelationshipsWithRevenue: 0.5},
				model.StageSeed:     {SoundIdea: 0.8, Prototype: 0.5, QualityTeam: 0.7, Relationships: 0.3, RelationshipsWithRevenue: 0.6},
				model.StageSeriesA:  {SoundIdea: 0.9, Prototype: 0.6, QualityTeam: 0.8, Relationships: 0.4, RelationshipsWithRevenue: 0.7},
				model.StageSeriesB:  {SoundIdea: 0.95, Prototype: 0.6, QualityTeam: 0.9, Relationships: 0.4, RelationshipsWithRevenue: 0.8},
				model.StageSeriesCP: {SoundIdea: 1.0, Prototype: 0.6, QualityTeam: 1.0, Relationships: 0.4, RelationshipsWithRevenue: 0.9},
			},
			IndustryMultipliers: map[model.Industry]float64{
				model.IndustrySaaS:               1.0,
				model.IndustryEcommerce:          0.9,
				model.IndustryB2BServices:        0.85,
				model.IndustryFinTech:            1.0,
				model.IndustryHealthTech:         1.0,
				model.IndustryEdTech:             0.9,
				model.IndustryMarketplace:        0.95,
				model.IndustryDeepTech:           1.0,
				model.IndustryConsumerApp:        0.85,
				model.IndustryEnterpriseSoftware: 1.0,
				model.IndustryOther:              0.85,
			},
			RolloutARRShare: 0.1,
		},
		Growth: GrowthPolicy{
			HyperThreshold:  100,
			HyperPremium:    1.5,
			StrongThreshold: 50,
			StrongPremium:   1.25,
			SlowThreshold:   20,
			SlowDiscount:    0.8,
		},
		Range: RangePolicy{
			LowDiscount: 0.8,
			HighPremium: 1.2,
		},
		Benchmarks: benchmark.DefaultTable(),
	}
}

func (p BerkusPolicy) capFor(stage model.FundingStage) float64 {
	if c, ok := p.StageCaps[stage]; ok && c > 0 {
		return c
	}
	return p.FactorCap
}

func (p BerkusPolicy) scoresFor(stage model.FundingStage) StageScores {
	if s, ok := p.StageScores[stage]; ok {
		return s
	}
	return p.StageScores[model.StageSeed]
}

func (p BerkusPolicy) industryMultiplier(ind model.Industry) float64 {
	if m, ok := p.IndustryMultipliers[ind]; ok {
		return m
	}
	if m, ok := p.IndustryMultipliers[model.IndustryOther]; ok {
		return m
	}
	return 1
}

// Calculator runs valuations against a Policy.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a Calculator with the given policy. A nil benchmark
// table falls back to the built-in one.
func NewCalculator(policy Policy) *Calculator {
	if policy.Benchmarks == nil {
		policy.Benchmarks = benchmark.DefaultTable()
	}
	return &Calculator{policy: policy}
}

var defaultCalculator = NewCalculator(DefaultPolicy())
