package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/finlens/internal/contracts"
)

func quarters(n int) []time.Time {
	periods := make([]time.Time, n)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	for i := range periods {
		periods[i] = end.AddDate(0, -3*i, 0)
	}
	return periods
}

func TestGate_Check(t *testing.T) {
	periods := quarters(4)
	income := contracts.NewQuarterlyStatement()
	for _, p := range periods {
		income.Set(contracts.ItemTotalRevenue, p, 100)
		income.Set(contracts.ItemNetIncome, p, 10)
	}
	// operating income only for half the quarters
	income.Set(contracts.ItemOperatingIncome, periods[0], 20)
	income.Set(contracts.ItemOperatingIncome, periods[1], 20)

	gate := NewGate(Config{Window: 10})
	report := gate.Check(&contracts.Financials{Income: income})

	assert.Equal(t, 4, report.Quarters)
	assert.Equal(t, 1.0, report.Coverage["sales"])
	assert.Equal(t, 0.5, report.Coverage["operating_profit"])
	assert.Equal(t, 1.0, report.Coverage["net_profit"])
	assert.Equal(t, 0.0, report.Coverage["eps"])
	assert.Equal(t, []string{"eps"}, report.Missing)
	assert.InDelta(t, 0.40+0.10+0.25, report.Score, 1e-9)
}

func TestGate_EPSFromShares(t *testing.T) {
	periods := quarters(2)
	income := contracts.NewQuarterlyStatement()
	for _, p := range periods {
		income.Set(contracts.ItemTotalRevenue, p, 100)
		income.Set(contracts.ItemNetIncome, p, 10)
		income.Set(contracts.ItemTotalOperatingExpenses, p, 70)
	}
	shares := 1e6

	report := NewGate(Config{}).Check(&contracts.Financials{
		Profile: contracts.CompanyProfile{SharesOutstanding: &shares},
		Income:  income,
	})

	assert.Equal(t, 1.0, report.Coverage["operating_profit"])
	assert.Equal(t, 1.0, report.Coverage["eps"])
	assert.Empty(t, report.Missing)
	assert.InDelta(t, 1.0, report.Score, 1e-9)
}

func TestGate_Window(t *testing.T) {
	periods := quarters(12)
	income := contracts.NewQuarterlyStatement()
	for i, p := range periods {
		// revenue missing only in the two oldest quarters
		if i < 10 {
			income.Set(contracts.ItemTotalRevenue, p, 100)
		} else {
			income.Set(contracts.ItemNetIncome, p, 1)
		}
	}

	report := NewGate(Config{Window: 10}).Check(&contracts.Financials{Income: income})
	assert.Equal(t, 10, report.Quarters)
	assert.Equal(t, 1.0, report.Coverage["sales"])
}

func TestGate_Empty(t *testing.T) {
	report := NewGate(Config{Window: 10}).Check(&contracts.Financials{})
	require.NotNil(t, report)
	assert.Zero(t, report.Quarters)
	assert.Zero(t, report.Score)
	assert.Len(t, report.Missing, 4)
}
