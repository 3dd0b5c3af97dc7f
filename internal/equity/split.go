package equity

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
)

const numFactors = 4

var factorNames = [numFactors]string{
	"Capital Invested",
	"Time Commitment",
	"Role Importance",
	"IP Contribution",
}

// CoFounder is one founder's self-reported contribution.
type CoFounder struct {
	Name            string  `json:"name" yaml:"name"`
	CapitalInvested float64 `json:"capital_invested" yaml:"capital_invested"`
	TimeCommitment  float64 `json:"time_commitment" yaml:"time_commitment"` // percent of full time, 0-100
	RoleImportance  float64 `json:"role_importance" yaml:"role_importance"` // 1-10
	IPContribution  float64 `json:"ip_contribution" yaml:"ip_contribution"` // 1-10
}

// Breakdown is a founder's weighted share of each factor, in percentage
// points of total equity.
type Breakdown struct {
	CapitalScore float64 `json:"capital_score"`
	TimeScore    float64 `json:"time_score"`
	RoleScore    float64 `json:"role_score"`
	IPScore      float64 `json:"ip_score"`
}

// FounderEquity is the computed allocation for one founder.
type FounderEquity struct {
	Name             string    `json:"name"`
	EquityPercentage float64   `json:"equity_percentage"`
	Breakdown        Breakdown `json:"breakdown"`
}

// SplitResult is the output of Split. Founders are in input order.
type SplitResult struct {
	Founders         []FounderEquity `json:"founders"`
	EffectiveWeights Weights         `json:"effective_weights"`
	TotalScore       float64         `json:"total_score"`
	Recommendation   string          `json:"recommendation"`
	Rationale        string          `json:"rationale"`
}

// Split computes an equity split using the default weights.
func Split(founders []CoFounder) SplitResult {
	return defaultCalculator.Split(founders)
}

// Split allocates 100% of the equity across founders. Each factor's weight is
// shared among founders in proportion to their raw value for that factor.
// When nobody contributed to a factor, its weight is redistributed
// proportionally across the factors that do have contributions.
func (c *Calculator) Split(founders []CoFounder) SplitResult {
	if len(founders) == 0 {
		return SplitResult{
			Founders:       []FounderEquity{},
			Recommendation: "Add co-founders to calculate equity split.",
		}
	}

	base := c.policy.Weights.values()
	if c.policy.Weights.Sum() <= 0 {
		base = DefaultPolicy().Weights.values()
	}
	for i := range base {
		base[i] = model.NonNegative(base[i])
	}

	raw := make([][numFactors]float64, len(founders))
	var totals [numFactors]float64
	for i, f := range founders {
		raw[i] = [numFactors]float64{
			model.NonNegative(f.CapitalInvested),
			model.Clamp(f.TimeCommitment, 0, 100),
			model.Clamp(f.RoleImportance, 0, 10),
			model.Clamp(f.IPContribution, 0, 10),
		}
		for k := range totals {
			totals[k] += raw[i][k]
		}
	}

	var activeSum, baseSum float64
	for k := range base {
		baseSum += base[k]
		if totals[k] > 0 {
			activeSum += base[k]
		}
	}

	var effective [numFactors]float64
	var redistributed []string
	allEmpty := activeSum == 0
	for k := range base {
		switch {
		case allEmpty:
			effective[k] = base[k] * 100 / baseSum
		case totals[k] > 0:
			effective[k] = base[k] * 100 / activeSum
		default:
			if base[k] > 0 {
				redistributed = append(redistributed, factorNames[k])
			}
		}
	}

	n := float64(len(founders))
	out := make([]FounderEquity, len(founders))
	var total float64
	for i, f := range founders {
		var scores [numFactors]float64
		for k := range scores {
			share := 1 / n
			if !allEmpty {
				share = 0
				if totals[k] > 0 {
					share = raw[i][k] / totals[k]
				}
			}
			scores[k] = share * effective[k]
		}
		pct := scores[0] + scores[1] + scores[2] + scores[3]
		total += pct
		out[i] = FounderEquity{
			Name:             displayName(f.Name, i),
			EquityPercentage: pct,
			Breakdown: Breakdown{
				CapitalScore: scores[0],
				TimeScore:    scores[1],
				RoleScore:    scores[2],
				IPScore:      scores[3],
			},
		}
	}

	zap.L().Debug("equity: split computed",
		zap.Int("founders", len(founders)),
		zap.Float64("total", total),
		zap.Strings("redistributed", redistributed),
	)

	return SplitResult{
		Founders:         out,
		EffectiveWeights: weightsFrom(effective),
		TotalScore:       total,
		Recommendation:   splitRecommendation(out),
		Rationale:        splitRationale(base, effective, redistributed, allEmpty),
	}
}

func displayName(name string, i int) string {
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("Co-founder %d", i+1)
	}
	return name
}

func splitRecommendation(founders []FounderEquity) string {
	parts := make([]string, len(founders))
	for i, f := range founders {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, format.Percentage(f.EquityPercentage, 1))
	}
	return strings.Join(parts, ", ")
}

func splitRationale(base, effective [numFactors]float64, redistributed []string, allEmpty bool) string {
	var b strings.Builder
	b.WriteString("This split is based on a weighted scoring system:\n")
	for k, name := range factorNames {
		fmt.Fprintf(&b, "• %s (%s)", name, format.Percentage(effective[k], 1))
		if !allEmpty && effective[k] != base[k] {
			fmt.Fprintf(&b, ", base weight %s", format.Percentage(base[k], 1))
		}
		b.WriteString("\n")
	}
	switch {
	case allEmpty:
		b.WriteString("\nNo contributions were reported for any factor, so equity is split equally.")
	case len(redistributed) > 0:
		fmt.Fprintf(&b, "\nNo co-founder reported any %s, so that weight was redistributed proportionally across the remaining factors.",
			strings.ToLower(strings.Join(redistributed, " or ")))
	}
	b.WriteString("\n\nEach factor's weight is shared among co-founders in proportion to what they contributed to it, " +
		"which keeps the allocation transparent and easy to revisit.")
	return b.String()
}
