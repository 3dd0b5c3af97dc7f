package equity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumEquity(res SplitResult) float64 {
	var total float64
	for _, f := range res.Founders {
		total += f.EquityPercentage
	}
	return total
}

func TestSplit_Empty(t *testing.T) {
	t.Parallel()
	res := Split(nil)
	assert.Empty(t, res.Founders)
	assert.NotNil(t, res.Founders)
	assert.Equal(t, "Add co-founders to calculate equity split.", res.Recommendation)
	assert.Zero(t, res.TotalScore)
}

func TestSplit_SumsToHundred(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		founders []CoFounder
	}{
		{"single founder", []CoFounder{{Name: "Solo", CapitalInvested: 5000, TimeCommitment: 100, RoleImportance: 9, IPContribution: 9}}},
		{"two unequal", []CoFounder{
			{Name: "A", CapitalInvested: 100000, TimeCommitment: 100, RoleImportance: 8, IPContribution: 6},
			{Name: "B", TimeCommitment: 50, RoleImportance: 6, IPContribution: 4},
		}},
		{"four mixed", []CoFounder{
			{Name: "A", CapitalInvested: 1, TimeCommitment: 10, RoleImportance: 1, IPContribution: 10},
			{Name: "B", CapitalInvested: 1e6, TimeCommitment: 100, RoleImportance: 10, IPContribution: 1},
			{Name: "C", TimeCommitment: 75, RoleImportance: 5, IPContribution: 5},
			{Name: "D", CapitalInvested: 2500, RoleImportance: 2},
		}},
		{"all zero", []CoFounder{{Name: "A"}, {Name: "B"}, {Name: "C"}}},
		{"out of range inputs", []CoFounder{
			{Name: "A", CapitalInvested: -500, TimeCommitment: 250, RoleImportance: 40, IPContribution: -3},
			{Name: "B", CapitalInvested: math.NaN(), TimeCommitment: 40, RoleImportance: 3, IPContribution: math.Inf(1)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Split(tt.founders)
			require.Len(t, res.Founders, len(tt.founders))
			assert.InDelta(t, 100, sumEquity(res), 1e-6)
			assert.InDelta(t, 100, res.TotalScore, 1e-6)
			assert.InDelta(t, 100, res.EffectiveWeights.Sum(), 1e-6)
			for _, f := range res.Founders {
				assert.False(t, math.IsNaN(f.EquityPercentage))
				assert.GreaterOrEqual(t, f.EquityPercentage, 0.0)
				b := f.Breakdown
				assert.InDelta(t, f.EquityPercentage, b.CapitalScore+b.TimeScore+b.RoleScore+b.IPScore, 1e-9)
			}
		})
	}
}

func TestSplit_EqualContributionSymmetry(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 6; n++ {
		founders := make([]CoFounder, n)
		for i := range founders {
			founders[i] = CoFounder{CapitalInvested: 25000, TimeCommitment: 80, RoleImportance: 7, IPContribution: 5}
		}
		res := Split(founders)
		for _, f := range res.Founders {
			assert.InDelta(t, 100/float64(n), f.EquityPercentage, 1e-9)
		}
	}
}

func TestSplit_NoCapitalRedistributesWeight(t *testing.T) {
	t.Parallel()
	founders := []CoFounder{
		{Name: "Asha", TimeCommitment: 100, RoleImportance: 10, IPContribution: 10},
		{Name: "Ben", TimeCommitment: 100, RoleImportance: 10, IPContribution: 10},
		{Name: "Chen", TimeCommitment: 100, RoleImportance: 10, IPContribution: 10},
	}
	res := Split(founders)

	require.Len(t, res.Founders, 3)
	for _, f := range res.Founders {
		assert.InDelta(t, 100.0/3, f.EquityPercentage, 1e-9)
		assert.Zero(t, f.Breakdown.CapitalScore)
	}
	assert.Zero(t, res.EffectiveWeights.Capital)
	assert.InDelta(t, 30*100.0/70, res.EffectiveWeights.Time, 1e-9)
	assert.InDelta(t, 20*100.0/70, res.EffectiveWeights.Role, 1e-9)
	assert.InDelta(t, 20*100.0/70, res.EffectiveWeights.IP, 1e-9)
	assert.Contains(t, res.Rationale, "capital invested")
	assert.Contains(t, res.Rationale, "redistributed")
	assert.Equal(t, "Asha: 33.3%, Ben: 33.3%, Chen: 33.3%", res.Recommendation)
}

func TestSplit_WeightedShares(t *testing.T) {
	t.Parallel()
	res := Split([]CoFounder{
		{Name: "A", CapitalInvested: 100000, TimeCommitment: 100, RoleImportance: 8, IPContribution: 6},
		{Name: "B", TimeCommitment: 50, RoleImportance: 6, IPContribution: 4},
	})
	require.Len(t, res.Founders, 2)

	a, b := res.Founders[0], res.Founders[1]
	assert.Equal(t, "A", a.Name)
	assert.InDelta(t, 30, a.Breakdown.CapitalScore, 1e-9)
	assert.InDelta(t, 20, a.Breakdown.TimeScore, 1e-9)
	assert.InDelta(t, 20*8.0/14, a.Breakdown.RoleScore, 1e-9)
	assert.InDelta(t, 12, a.Breakdown.IPScore, 1e-9)
	assert.InDelta(t, 73.428571, a.EquityPercentage, 1e-5)
	assert.InDelta(t, 26.571429, b.EquityPercentage, 1e-5)
	assert.Equal(t, "A: 73.4%, B: 26.6%", res.Recommendation)
	assert.Contains(t, res.Rationale, "Capital Invested (30.0%)")
}

func TestSplit_AllZeroIsEqual(t *testing.T) {
	t.Parallel()
	res := Split([]CoFounder{{}, {}})
	require.Len(t, res.Founders, 2)
	assert.Equal(t, "Co-founder 1", res.Founders[0].Name)
	assert.Equal(t, "Co-founder 2", res.Founders[1].Name)
	assert.InDelta(t, 50, res.Founders[0].EquityPercentage, 1e-9)
	assert.Contains(t, res.Rationale, "split equally")
}

func TestSplit_CustomWeights(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(Policy{Weights: Weights{Capital: 100}})
	res := calc.Split([]CoFounder{
		{Name: "Investor-founder", CapitalInvested: 75000, TimeCommitment: 10},
		{Name: "Operator", CapitalInvested: 25000, TimeCommitment: 100},
	})
	assert.InDelta(t, 75, res.Founders[0].EquityPercentage, 1e-9)
	assert.InDelta(t, 25, res.Founders[1].EquityPercentage, 1e-9)
}

func TestSplit_UnnormalizedWeightsStillSumToHundred(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(Policy{Weights: Weights{Capital: 1, Time: 1, Role: 1, IP: 1}})
	res := calc.Split([]CoFounder{
		{CapitalInvested: 10, TimeCommitment: 100, RoleImportance: 5, IPContribution: 5},
		{CapitalInvested: 30, TimeCommitment: 100, RoleImportance: 5, IPContribution: 5},
	})
	assert.InDelta(t, 100, sumEquity(res), 1e-9)
	assert.InDelta(t, 25, res.EffectiveWeights.Capital, 1e-9)
}
