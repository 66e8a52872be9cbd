package s1_metrics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/finlens/internal/contracts"
)

func seriesOf(sales, opm []float64) contracts.NormalizedSeries {
	series := make(contracts.NormalizedSeries, len(sales))
	for i := range sales {
		series[i] = contracts.QuarterRecord{
			Quarter: fmt.Sprintf("2024-Q%d", i+1),
			Sales:   sales[i],
		}
		if opm != nil {
			series[i].OPMPercent = opm[i]
		}
	}
	return series
}

func assertAllUndefined(t *testing.T, r contracts.GrowthRecord) {
	t.Helper()
	assert.True(t, r.SalesGrowth.IsUndefined())
	assert.True(t, r.OperatingProfitGrowth.IsUndefined())
	assert.True(t, r.OPMChange.IsUndefined())
	assert.True(t, r.NetProfitGrowth.IsUndefined())
	assert.True(t, r.EPSGrowth.IsUndefined())
}

func TestGrowth_SalesQoQ(t *testing.T) {
	growth := Growth(seriesOf([]float64{100, 150, 120}, nil))
	require.Len(t, growth, 3)

	assertAllUndefined(t, growth[0])
	assert.Equal(t, contracts.Rate(50.00), growth[1].SalesGrowth)
	assert.Equal(t, contracts.Rate(-20.00), growth[2].SalesGrowth)
}

func TestGrowth_OPMChangeIsAbsolute(t *testing.T) {
	growth := Growth(seriesOf([]float64{1, 1, 1}, []float64{10.0, 12.5, 9.0}))
	require.Len(t, growth, 3)

	assert.True(t, growth[0].OPMChange.IsUndefined())
	assert.Equal(t, contracts.Rate(2.50), growth[1].OPMChange)
	assert.Equal(t, contracts.Rate(-3.50), growth[2].OPMChange)
}

func TestGrowth_ZeroBaseline(t *testing.T) {
	growth := Growth(seriesOf([]float64{0, 100}, nil))
	require.Len(t, growth, 2)

	assert.True(t, growth[0].SalesGrowth.IsUndefined())
	assert.True(t, growth[1].SalesGrowth.IsUndefined(), "change from zero must be undefined, not 0")
	assert.False(t, math.IsInf(float64(growth[1].SalesGrowth), 0))

	// zero to zero is undefined too
	growth = Growth(seriesOf([]float64{0, 0}, nil))
	assert.True(t, growth[1].SalesGrowth.IsUndefined())
}

func TestGrowth_AllFields(t *testing.T) {
	series := contracts.NormalizedSeries{
		{Quarter: "2024-Q1", Sales: 200, OperatingProfit: 40, OPMPercent: 20, NetProfit: 25, EPS: 10},
		{Quarter: "2024-Q2", Sales: 220, OperatingProfit: 33, OPMPercent: 15, NetProfit: 30, EPS: 12},
	}

	growth := Growth(series)
	require.Len(t, growth, 2)

	g := growth[1]
	assert.Equal(t, "2024-Q2", g.Quarter)
	assert.Equal(t, contracts.Rate(10.00), g.SalesGrowth)
	assert.Equal(t, contracts.Rate(-17.50), g.OperatingProfitGrowth)
	assert.Equal(t, contracts.Rate(-5.00), g.OPMChange)
	assert.Equal(t, contracts.Rate(20.00), g.NetProfitGrowth)
	assert.Equal(t, contracts.Rate(20.00), g.EPSGrowth)
}

func TestGrowth_Rounding(t *testing.T) {
	growth := Growth(seriesOf([]float64{3, 4}, []float64{10.004, 11.111}))

	// 33.333... rounds to 33.33
	assert.Equal(t, contracts.Rate(33.33), growth[1].SalesGrowth)
	// 1.107 rounds to 1.11
	assert.Equal(t, contracts.Rate(1.11), growth[1].OPMChange)
}

func TestGrowth_NegativeBaseline(t *testing.T) {
	series := contracts.NormalizedSeries{
		{Quarter: "2024-Q1", Sales: 10, NetProfit: -50},
		{Quarter: "2024-Q2", Sales: 10, NetProfit: -25},
	}

	growth := Growth(series)
	// same formula as for positive baselines
	assert.Equal(t, contracts.Rate(-50.00), growth[1].NetProfitGrowth)
}

func TestGrowth_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Growth(nil))

	growth := Growth(seriesOf([]float64{100}, nil))
	require.Len(t, growth, 1)
	assertAllUndefined(t, growth[0])
}

func TestNormalizeThenGrowth(t *testing.T) {
	periods := quarterEnds(3)
	s := buildStatement(periods, map[string][]float64{
		contracts.ItemTotalRevenue: {120e7, 150e7, 100e7},
	})

	series, err := Normalize(s, contracts.CompanyProfile{})
	require.NoError(t, err)

	growth := Growth(series)
	require.Len(t, growth, len(series))
	assert.Equal(t, series.Quarters()[2], growth[2].Quarter)
	assert.Equal(t, contracts.Rate(50.00), growth[1].SalesGrowth)
	assert.Equal(t, contracts.Rate(-20.00), growth[2].SalesGrowth)
}
