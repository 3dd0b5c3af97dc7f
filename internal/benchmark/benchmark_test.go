package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incubazar/venture-calc/internal/model"
)

func TestFor_KnownIndustry(t *testing.T) {
	t.Parallel()
	b := For(model.IndustryFinTech)
	assert.Equal(t, model.IndustryFinTech, b.Industry)
	assert.InDelta(t, 125, b.NRR.Excellent, 0.001)
	assert.InDelta(t, 15, b.RevenueMultiples.SeriesA.Mid(), 0.001)
}

func TestFor_UnknownFallsBackToOther(t *testing.T) {
	t.Parallel()
	b := For(model.Industry("Space Mining"))
	assert.Equal(t, model.IndustryOther, b.Industry)
}

func TestAll_CoversEveryIndustryInOrder(t *testing.T) {
	t.Parallel()
	all := All()
	require.Len(t, all, len(model.Industries))
	for i, ind := range model.Industries {
		assert.Equal(t, ind, all[i].Industry)
	}
}

func TestTable_Consistency(t *testing.T) {
	t.Parallel()
	for _, b := range All() {
		t.Run(string(b.Industry), func(t *testing.T) {
			t.Parallel()
			for _, r := range []MultipleRange{b.RevenueMultiples.PreSeed, b.RevenueMultiples.Seed, b.RevenueMultiples.SeriesA} {
				assert.Greater(t, r.High, r.Low)
				assert.Positive(t, r.Low)
			}
			assert.GreaterOrEqual(t, b.LTVCACRatio.Excellent, b.LTVCACRatio.Good)
			assert.GreaterOrEqual(t, b.LTVCACRatio.Good, b.LTVCACRatio.Acceptable)
			assert.GreaterOrEqual(t, b.NRR.Excellent, b.NRR.Good)
			assert.GreaterOrEqual(t, b.NRR.Good, b.NRR.Acceptable)
		})
	}
}

func TestForStage(t *testing.T) {
	t.Parallel()
	m := For(model.IndustrySaaS).RevenueMultiples
	assert.Equal(t, m.PreSeed, m.ForStage(model.StagePreSeed))
	assert.Equal(t, m.Seed, m.ForStage(model.StageSeed))
	assert.Equal(t, m.SeriesA, m.ForStage(model.StageSeriesA))
	assert.Equal(t, m.SeriesA, m.ForStage(model.StageSeriesB))
	assert.Equal(t, m.SeriesA, m.ForStage(model.StageSeriesCP))
}

func TestDefaultTable_IsCopy(t *testing.T) {
	t.Parallel()
	tbl := DefaultTable()
	tbl[model.IndustrySaaS] = Benchmarks{Industry: "mutated"}
	assert.Equal(t, model.IndustrySaaS, For(model.IndustrySaaS).Industry)
}
