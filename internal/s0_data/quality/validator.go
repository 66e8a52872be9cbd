package quality

import (
	"time"

	"github.com/wonny/finlens/internal/contracts"
)

// Gate measures how completely a provider filled the income statement
// lines the metrics depend on
type Gate struct {
	config Config
}

// Config holds quality gate settings
type Config struct {
	// Window is the number of most recent quarters inspected
	Window int
}

// Report is the outcome of a quality check
type Report struct {
	Quarters int                `json:"quarters"`
	Coverage map[string]float64 `json:"coverage"`
	Score    float64            `json:"score"`
	Missing  []string           `json:"missing,omitempty"`
}

// NewGate creates a new quality gate
func NewGate(config Config) *Gate {
	return &Gate{config: config}
}

// Check computes per-line-item coverage over the inspected window.
// ⭐ SSOT: S0 → S1 품질 검증
func (g *Gate) Check(fin *contracts.Financials) *Report {
	report := &Report{Coverage: make(map[string]float64)}
	if fin == nil || fin.Income.IsEmpty() {
		report.Missing = []string{"sales", "operating_profit", "net_profit", "eps"}
		return report
	}

	periods := fin.Income.Periods
	if g.config.Window > 0 && len(periods) > g.config.Window {
		periods = periods[:g.config.Window]
	}
	report.Quarters = len(periods)

	income := fin.Income
	report.Coverage["sales"] = coverage(income, contracts.ItemTotalRevenue, periods)

	// either source is enough for operating profit
	report.Coverage["operating_profit"] = max(
		coverage(income, contracts.ItemOperatingIncome, periods),
		coverage(income, contracts.ItemTotalOperatingExpenses, periods),
	)
	report.Coverage["net_profit"] = coverage(income, contracts.ItemNetIncome, periods)

	epsCov := coverage(income, contracts.ItemBasicEPS, periods)
	if fin.Profile.HasShares() {
		// derivable from net profit and the share count
		epsCov = max(epsCov, report.Coverage["net_profit"])
	}
	report.Coverage["eps"] = epsCov

	for _, key := range []string{"sales", "operating_profit", "net_profit", "eps"} {
		if report.Coverage[key] == 0 {
			report.Missing = append(report.Missing, key)
		}
	}

	report.Score = calculateScore(report.Coverage)
	return report
}

// coverage is the share of periods whose cell for item was reported
func coverage(s *contracts.QuarterlyStatement, item string, periods []time.Time) float64 {
	if len(periods) == 0 {
		return 0
	}
	row, ok := s.Items[item]
	if !ok {
		return 0
	}

	found := 0
	for _, p := range periods {
		if _, ok := row[contracts.PeriodKey(p)]; ok {
			found++
		}
	}
	return float64(found) / float64(len(periods))
}

// calculateScore calculates overall quality score using weighted average
func calculateScore(coverage map[string]float64) float64 {
	// 가중치 (합계 = 1.0)
	weights := map[string]float64{
		"sales":            0.40, // 매출 필수
		"operating_profit": 0.20,
		"net_profit":       0.25,
		"eps":              0.15,
	}

	score := 0.0
	for key, weight := range weights {
		if cov, exists := coverage[key]; exists {
			score += cov * weight
		}
	}

	return score
}
