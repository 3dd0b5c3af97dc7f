// Package benchmark holds per-industry reference values for unit economics,
// retention and revenue multiples.
package benchmark

import "github.com/incubazar/venture-calc/internal/model"

// Thresholds grades a metric from best to worst.
type Thresholds struct {
	Excellent  float64 `json:"excellent" yaml:"excellent"`
	Good       float64 `json:"good" yaml:"good"`
	Acceptable float64 `json:"acceptable" yaml:"acceptable"`
}

// MultipleRange is a low/high ARR multiple band.
type MultipleRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Mid returns the midpoint of the band.
func (r MultipleRange) Mid() float64 {
	return (r.Low + r.High) / 2
}

// RevenueMultiples holds multiple bands by stage. Series B and later rounds
// are priced off the Series A band.
type RevenueMultiples struct {
	PreSeed MultipleRange `json:"pre_seed" yaml:"pre_seed"`
	Seed    MultipleRange `json:"seed" yaml:"seed"`
	SeriesA MultipleRange `json:"series_a" yaml:"series_a"`
}

// ForStage returns the band that applies to stage.
func (m RevenueMultiples) ForStage(stage model.FundingStage) MultipleRange {
	switch stage {
	case model.StagePreSeed:
		return m.PreSeed
	case model.StageSeed:
		return m.Seed
	default:
		return m.SeriesA
	}
}

// Benchmarks are the reference values for one industry.
type Benchmarks struct {
	Industry         model.Industry   `json:"industry" yaml:"industry"`
	LTVCACRatio      Thresholds       `json:"ltv_cac_ratio" yaml:"ltv_cac_ratio"`
	NRR              Thresholds       `json:"nrr" yaml:"nrr"`
	RevenueMultiples RevenueMultiples `json:"revenue_multiple" yaml:"revenue_multiple"`
}

// Table maps industries to their benchmarks.
type Table map[model.Industry]Benchmarks

// For returns the benchmarks for industry, falling back to Other.
func (t Table) For(industry model.Industry) Benchmarks {
	if b, ok := t[industry]; ok {
		return b
	}
	if b, ok := t[model.IndustryOther]; ok {
		return b
	}
	return defaultTable[model.IndustryOther]
}

// All returns the table's benchmarks in model.Industries order.
func (t Table) All() []Benchmarks {
	out := make([]Benchmarks, 0, len(model.Industries))
	for _, ind := range model.Industries {
		if b, ok := t[ind]; ok {
			out = append(out, b)
		}
	}
	return out
}

// For returns the default benchmarks for industry.
func For(industry model.Industry) Benchmarks {
	return defaultTable.For(industry)
}

// All returns the default benchmarks for every industry.
func All() []Benchmarks {
	return defaultTable.All()
}

// DefaultTable returns a copy of the built-in benchmark table.
func DefaultTable() Table {
	t := make(Table, len(defaultTable))
	for k, v := range defaultTable {
		t[k] = v
	}
	return t
}

func bench(ind model.Industry, ltv, nrr Thresholds, pre, seed, a MultipleRange) Benchmarks {
	return Benchmarks{
		Industry:    ind,
		LTVCACRatio: ltv,
		NRR:         nrr,
		RevenueMultiples: RevenueMultiples{
			PreSeed: pre,
			Seed:    seed,
			SeriesA: a,
		},
	}
}

var defaultTable = Table{
	model.IndustrySaaS: bench(model.IndustrySaaS,
		Thresholds{5, 3, 2}, Thresholds{120, 100, 85},
		MultipleRange{3, 8}, MultipleRange{5, 12}, MultipleRange{8, 15}),
	model.IndustryEcommerce: bench(model.IndustryEcommerce,
		Thresholds{4, 3, 2}, Thresholds{110, 95, 80},
		MultipleRange{2, 5}, MultipleRange{3, 7}, MultipleRange{4, 10}),
	model.IndustryB2BServices: bench(model.IndustryB2BServices,
		Thresholds{4, 3, 2}, Thresholds{115, 100, 85},
		MultipleRange{2, 6}, MultipleRange{4, 8}, MultipleRange{6, 12}),
	model.IndustryFinTech: bench(model.IndustryFinTech,
		Thresholds{5, 3, 2}, Thresholds{125, 105, 90},
		MultipleRange{4, 10}, MultipleRange{6, 15}, MultipleRange{10, 20}),
	model.IndustryHealthTech: bench(model.IndustryHealthTech,
		Thresholds{5, 3, 2}, Thresholds{120, 100, 85},
		MultipleRange{3, 8}, MultipleRange{5, 12}, MultipleRange{8, 16}),
	model.IndustryEdTech: bench(model.IndustryEdTech,
		Thresholds{4, 3, 2}, Thresholds{115, 100, 85},
		MultipleRange{3, 7}, MultipleRange{4, 10}, MultipleRange{6, 14}),
	model.IndustryMarketplace: bench(model.IndustryMarketplace,
		Thresholds{4, 3, 2}, Thresholds{110, 95, 80},
		MultipleRange{3, 8}, MultipleRange{5, 12}, MultipleRange{8, 18}),
	model.IndustryDeepTech: bench(model.IndustryDeepTech,
		Thresholds{5, 3, 2}, Thresholds{120, 100, 85},
		MultipleRange{4, 12}, MultipleRange{6, 18}, MultipleRange{10, 25}),
	model.IndustryConsumerApp: bench(model.IndustryConsumerApp,
		Thresholds{3, 2, 1.5}, Thresholds{105, 90, 75},
		MultipleRange{2, 6}, MultipleRange{3, 10}, MultipleRange{5, 15}),
	model.IndustryEnterpriseSoftware: bench(model.IndustryEnterpriseSoftware,
		Thresholds{6, 4, 3}, Thresholds{125, 110, 95},
		MultipleRange{4, 10}, MultipleRange{6, 15}, MultipleRange{10, 20}),
	model.IndustryOther: bench(model.IndustryOther,
		Thresholds{4, 3, 2}, Thresholds{110, 100, 85},
		MultipleRange{2, 6}, MultipleRange{4, 10}, MultipleRange{6, 15}),
}
