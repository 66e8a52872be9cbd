package s1_metrics

import (
	"fmt"
	"time"

	"github.com/wonny/finlens/internal/contracts"
)

const (
	// CroreDivisor converts base currency units to crores
	CroreDivisor = 10_000_000

	// MaxQuarters is the number of most recent quarters kept
	MaxQuarters = 10
)

// Normalize derives Sales, Operating Profit, OPM%, Net Profit and EPS for the
// most recent quarters of an income statement.
// ⭐ SSOT: 재무 지표 정규화는 이 함수에서만
//
// The returned series is oldest first. Sales is mandatory; every other field
// falls back to a derived value or 0 when its line item is missing.
func Normalize(statement *contracts.QuarterlyStatement, profile contracts.CompanyProfile) (contracts.NormalizedSeries, error) {
	if statement.IsEmpty() {
		return nil, contracts.ErrNoData
	}

	if !statement.Has(contracts.ItemTotalRevenue) {
		return nil, &contracts.MissingFieldError{
			Field: "Sales",
			Item:  contracts.ItemTotalRevenue,
		}
	}

	periods := statement.Periods
	if len(periods) > MaxQuarters {
		periods = periods[:MaxQuarters]
	}

	series := make(contracts.NormalizedSeries, len(periods))
	for i, period := range periods {
		// periods are newest first; fill from the back
		series[len(periods)-1-i] = normalizeQuarter(statement, profile, period)
	}

	return series, nil
}

func normalizeQuarter(s *contracts.QuarterlyStatement, profile contracts.CompanyProfile, period time.Time) contracts.QuarterRecord {
	rec := contracts.QuarterRecord{
		Quarter:   QuarterLabel(period),
		PeriodEnd: period,
		Sales:     s.Value(contracts.ItemTotalRevenue, period) / CroreDivisor,
	}

	// Operating profit: reported, else revenue minus operating expenses
	switch {
	case s.Has(contracts.ItemOperatingIncome):
		rec.OperatingProfit = s.Value(contracts.ItemOperatingIncome, period) / CroreDivisor
	case s.Has(contracts.ItemTotalOperatingExpenses):
		revenue := s.Value(contracts.ItemTotalRevenue, period)
		opex := s.Value(contracts.ItemTotalOperatingExpenses, period)
		rec.OperatingProfit = (revenue - opex) / CroreDivisor
	}

	if rec.Sales != 0 {
		rec.OPMPercent = rec.OperatingProfit / rec.Sales * 100
	}

	if s.Has(contracts.ItemNetIncome) {
		rec.NetProfit = s.Value(contracts.ItemNetIncome, period) / CroreDivisor
	}

	// EPS: reported, else net profit (back in base units) per share
	switch {
	case s.Has(contracts.ItemBasicEPS):
		rec.EPS = s.Value(contracts.ItemBasicEPS, period)
	case profile.HasShares():
		rec.EPS = rec.NetProfit * CroreDivisor / *profile.SharesOutstanding
	}

	return rec
}

// QuarterLabel formats a period end date as YYYY-Q<n> using calendar quarters
func QuarterLabel(periodEnd time.Time) string {
	quarter := (int(periodEnd.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", periodEnd.Year(), quarter)
}
