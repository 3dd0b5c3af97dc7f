package unitecon

import "github.com/incubazar/venture-calc/internal/model"

// Default sensitivity axes, in percent.
var (
	DefaultCACChanges   = []float64{-20, -10, 0, 10, 20}
	DefaultChurnChanges = []float64{-5, -2.5, 0, 2.5, 5}
)

// SensitivityCell is one LTV:CAC outcome for a pair of changes.
type SensitivityCell struct {
	CACChange   float64 `json:"cac_change"`
	ChurnChange float64 `json:"churn_change"`
	LTV         float64 `json:"ltv"`
	CAC         float64 `json:"cac"`
	Ratio       float64 `json:"ratio"`
	Rating      Rating  `json:"rating"`
}

// SensitivityMatrix holds one row per churn change and one column per CAC change.
type SensitivityMatrix struct {
	CACChanges   []float64           `json:"cac_changes"`
	ChurnChanges []float64           `json:"churn_changes"`
	Results      [][]SensitivityCell `json:"results"`
}

// Sensitivity flexes acquisition spend and churn around the base inputs.
// A churn increase of x% shortens lifespan by a factor of 1+x/100. Nil axes
// use the defaults.
func Sensitivity(ltvIn LTVInputs, cacIn CACInputs, cacChanges, churnChanges []float64) SensitivityMatrix {
	if cacChanges == nil {
		cacChanges = DefaultCACChanges
	}
	if churnChanges == nil {
		churnChanges = DefaultChurnChanges
	}

	m := SensitivityMatrix{
		CACChanges:   append([]float64(nil), cacChanges...),
		ChurnChanges: append([]float64(nil), churnChanges...),
		Results:      make([][]SensitivityCell, 0, len(churnChanges)),
	}
	for _, churn := range churnChanges {
		adjLTV := ltvIn
		if f := 1 + churn/100; f > 0 {
			adjLTV.AvgCustomerLifespan = model.Quotient(ltvIn.AvgCustomerLifespan, f)
		} else {
			adjLTV.AvgCustomerLifespan = 0
		}
		ltv := LTV(adjLTV)

		row := make([]SensitivityCell, 0, len(cacChanges))
		for _, change := range cacChanges {
			adjCAC := cacIn
			adjCAC.TotalSalesMarketingSpend = model.Bounded(cacIn.TotalSalesMarketingSpend * (1 + change/100))
			r := rate(ltv, CAC(adjCAC))
			row = append(row, SensitivityCell{
				CACChange:   change,
				ChurnChange: churn,
				LTV:         r.LTV,
				CAC:         r.CAC,
				Ratio:       r.Ratio,
				Rating:      r.Rating,
			})
		}
		m.Results = append(m.Results, row)
	}
	return m
}
