package s1_metrics

import (
	"math"

	"github.com/wonny/finlens/internal/contracts"
)

// Growth computes quarter-over-quarter changes for a normalized series.
// ⭐ SSOT: QoQ 성장률 계산은 이 함수에서만
//
// The result has one record per quarter. The first quarter has no
// predecessor, so all of its fields are contracts.Undefined(); a percentage
// change from a zero baseline is undefined as well. OPM% is reported as an
// absolute change in percentage points. Values are rounded to 2 decimals.
func Growth(series contracts.NormalizedSeries) contracts.GrowthSeries {
	growth := make(contracts.GrowthSeries, len(series))

	for i, cur := range series {
		if i == 0 {
			growth[i] = contracts.GrowthRecord{
				Quarter:               cur.Quarter,
				SalesGrowth:           contracts.Undefined(),
				OperatingProfitGrowth: contracts.Undefined(),
				OPMChange:             contracts.Undefined(),
				NetProfitGrowth:       contracts.Undefined(),
				EPSGrowth:             contracts.Undefined(),
			}
			continue
		}

		prev := series[i-1]
		growth[i] = contracts.GrowthRecord{
			Quarter:               cur.Quarter,
			SalesGrowth:           percentChange(prev.Sales, cur.Sales),
			OperatingProfitGrowth: percentChange(prev.OperatingProfit, cur.OperatingProfit),
			OPMChange:             contracts.Rate(round2(cur.OPMPercent - prev.OPMPercent)),
			NetProfitGrowth:       percentChange(prev.NetProfit, cur.NetProfit),
			EPSGrowth:             percentChange(prev.EPS, cur.EPS),
		}
	}

	return growth
}

func percentChange(previous, current float64) contracts.Rate {
	if previous == 0 {
		return contracts.Undefined()
	}
	return contracts.Rate(round2((current - previous) / previous * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
